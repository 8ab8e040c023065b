package polymarket

// DTOs raw de la API de Polymarket. Solo se usan dentro de este paquete.

// gammaMarket es la respuesta de GET /markets/slug/{slug} de Gamma.
// clobTokenIds llega como string JSON conteniendo un array:
// "[\"0xaaa...\", \"0xbbb...\"]".
type gammaMarket struct {
	ConditionID  string `json:"conditionId"`
	ClobTokenIDs string `json:"clobTokenIds"`
	EndDate      string `json:"endDate"`
	Slug         string `json:"slug"`
}

// subscribeMsg es el mensaje de suscripción del websocket de mercado.
type subscribeMsg struct {
	AssetIDs             []string `json:"assets_ids"`
	Operation            string   `json:"operation"`
	CustomFeatureEnabled bool     `json:"custom_feature_enabled"`
}

// bestBidAskMsg es la actualización de top-of-book que publica el CLOB.
// Los precios llegan como strings en dólares ("0.485").
type bestBidAskMsg struct {
	EventType string `json:"event_type"`
	AssetID   string `json:"asset_id"`
	BestBid   string `json:"best_bid"`
	BestAsk   string `json:"best_ask"`
}

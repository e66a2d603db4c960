package topics

const (
	// Resultados de partidas vindos do provedor
	MatchResults = "match_results"

	// Palpites liquidados
	PredictionSettled = "prediction_settled"

	// DLQs
	MatchResultsDLQ = "match_results_dlq"
)

package models

// ReportMeta identifies one pipeline run. RunID is derived from the input
// bytes and configuration (UUIDv5), so identical runs produce identical
// payloads; GeneratedAt is the run's injected time anchor for the same reason.
type ReportMeta struct {
	RunID       string `json:"run_id"`
	GeneratedAt string `json:"generated_at"`
	Tool        string `json:"tool"`
}

// ClusterStats describes one cluster: size, per-feature central tendencies,
// threshold-derived tags and the composite customer-type label.
type ClusterStats struct {
	ClusterID      int                `json:"cluster_id"`
	Size           int                `json:"size"`
	Percentage     float64            `json:"percentage"`
	FeatureMeans   map[string]float64 `json:"feature_means"`
	FeatureMedians map[string]float64 `json:"feature_medians,omitempty"`
	AgeGroup       string             `json:"age_group,omitempty"`
	LoyaltyLevel   string             `json:"loyalty_level,omitempty"`
	Frequency      string             `json:"purchase_frequency,omitempty"`
	SpendingLevel  string             `json:"spending_level,omitempty"`
	MalePct        float64            `json:"male_percentage,omitempty"`
	FemalePct      float64            `json:"female_percentage,omitempty"`
	DominantGender string             `json:"dominant_gender,omitempty"`
	CustomerType   string             `json:"customer_type,omitempty"`
	Persona        string             `json:"persona,omitempty"`
	TopCategories  []CategoryShare    `json:"top_categories,omitempty"`
}

// CategoryShare reports one category's spend within a cluster.
type CategoryShare struct {
	Category string  `json:"category"`
	Spend    float64 `json:"spend"`
	Share    float64 `json:"share"`
}

// CustomerSample is a normalized record annotated with its cluster id, used
// for the per-cluster sample listings in the clustering report.
type CustomerSample struct {
	CustomerRecord
	Cluster int `json:"cluster"`
}

// VisualizationData carries the 2D projection of the clustered feature space.
type VisualizationData struct {
	Points            [][]float64 `json:"points"`
	Centers           [][]float64 `json:"centers"`
	ClusterLabels     []int       `json:"cluster_labels"`
	ExplainedVariance []float64   `json:"explained_variance"`
}

// ClusteringReport is the stdout payload of the segment-customers binary.
type ClusteringReport struct {
	Meta          ReportMeta        `json:"meta"`
	ClusterStats  []ClusterStats    `json:"cluster_stats"`
	SampleClients []CustomerSample  `json:"sample_clients"`
	FeaturesUsed  []string          `json:"features_used"`
	NumClusters   int               `json:"num_clusters"`
	Visualization VisualizationData `json:"visualization_data"`
	Inertia       float64           `json:"inertia"`
}

// ProgramMatch is one scored loyalty program inside a segment recommendation.
type ProgramMatch struct {
	ProgramID          string   `json:"program_id"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Type               string   `json:"type,omitempty"`
	Benefits           []string `json:"benefits"`
	MatchScore         float64  `json:"match_score"`
	ImplementationCost string   `json:"implementation_cost"`
	RetentionRate      float64  `json:"retention_rate,omitempty"`
}

// SegmentCharacteristics are the categorical tags a recommendation was
// scored against.
type SegmentCharacteristics struct {
	LoyaltyLevel  string `json:"loyalty_level"`
	Frequency     string `json:"purchase_frequency"`
	SpendingLevel string `json:"spending_level"`
	AgeGroup      string `json:"age_group"`
}

// SegmentRecommendation is the ranked program list for one customer segment.
type SegmentRecommendation struct {
	SegmentID       int                    `json:"segment_id"`
	Persona         string                 `json:"persona"`
	Characteristics SegmentCharacteristics `json:"segment_characteristics"`
	Size            int                    `json:"size"`
	Percentage      float64                `json:"percentage"`
	Programs        []ProgramMatch         `json:"recommended_programs"`
}

// CategoryRecommendation is the static program suggestion for one observed
// product category.
type CategoryRecommendation struct {
	Category    string         `json:"category"`
	Explanation string         `json:"explanation"`
	Programs    []ProgramMatch `json:"recommended_programs"`
}

// RecommendationReport is the stdout payload of the recommend-programs binary.
type RecommendationReport struct {
	Meta                    ReportMeta               `json:"meta"`
	SegmentRecommendations  []SegmentRecommendation  `json:"segment_recommendations"`
	ProductRecommendations  []CategoryRecommendation `json:"product_recommendations"`
	Segments                []ClusterStats           `json:"segments"`
}

// PredictedProduct is one product-affinity entry of a customer forecast.
type PredictedProduct struct {
	Name       string  `json:"name"`
	Category   string  `json:"category"`
	Likelihood float64 `json:"likelihood"`
	AvgPrice   float64 `json:"avg_price"`
}

// CategoryForecast summarizes a customer's affinity for one category.
type CategoryForecast struct {
	Category      string            `json:"category"`
	PurchaseCount int               `json:"purchase_count"`
	TotalSpent    float64           `json:"total_spent"`
	Products      []ProductForecast `json:"products"`
}

// ProductForecast is a product summary inside a category affinity block.
type ProductForecast struct {
	Name          string  `json:"name"`
	PurchaseCount int     `json:"purchase_count"`
	AvgPrice      float64 `json:"avg_price"`
}

// TimeSeriesInsights is a compact per-customer history summary attached to a
// forecast.
type TimeSeriesInsights struct {
	Trend           string  `json:"trend"`
	AvgPurchase     float64 `json:"avg_purchase"`
	Volatility      float64 `json:"volatility"`
	PurchaseHistory int     `json:"purchase_history"`
}

// CustomerForecast is the per-customer forward-looking prediction.
type CustomerForecast struct {
	ClientID            string              `json:"client_id"`
	Name                string              `json:"name"`
	Segment             string              `json:"segment"`
	PredictedAmount     float64             `json:"predicted_amount"`
	PredictedFrequency  float64             `json:"predicted_frequency"`
	PurchaseProbability float64             `json:"purchase_probability"`
	ExpectedDate        string              `json:"expected_purchase_date"`
	Period              string              `json:"prediction_period"`
	AmountAccuracy      int                 `json:"amount_accuracy"`
	PredictedProducts   []PredictedProduct  `json:"predicted_products"`
	LikelyCategories    []CategoryForecast  `json:"likely_categories"`
	Insights            *TimeSeriesInsights `json:"time_series_insights,omitempty"`
}

// ModelMetrics reports the cross-validated regression quality.
type ModelMetrics struct {
	Model string  `json:"best_model"`
	R2    float64 `json:"r2_score"`
	MSE   float64 `json:"mse"`
	RMSE  float64 `json:"rmse"`
	MAE   float64 `json:"mae"`
}

// ForecastReport is the stdout payload of the forecast-purchases binary.
type ForecastReport struct {
	Meta           ReportMeta         `json:"meta"`
	Predictions    []CustomerForecast `json:"predictions"`
	Metrics        ModelMetrics       `json:"model_metrics"`
	FeaturesUsed   []string           `json:"features_used"`
	Period         string             `json:"prediction_period"`
	AmountAccuracy int                `json:"amount_accuracy"`
}

package requests

// SimilarityRequest asks for the corpus addresses most similar to Address.
type SimilarityRequest struct {
	Address  string `json:"address" binding:"required"`
	TopN     int    `json:"top_n,omitempty" binding:"omitempty,min=1,max=100"`
	Mode     int    `json:"mode,omitempty" binding:"omitempty,oneof=1 2"`
	UseCache *bool  `json:"use_cache,omitempty"`
}

// RebuildRegionRequest rebuilds vectors for one region key.
type RebuildRegionRequest struct {
	RegionKey string `json:"region_key" binding:"required"`
}

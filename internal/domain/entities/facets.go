package entities

// FacetOption is a selectable value in a dependent filter list, carrying a
// localized and an English display label. Label fallbacks are resolved at
// build time so consumers never see an empty label for a present value.
type FacetOption struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	EngLabel string `json:"engLabel"`
}

// ServiceOption is a selectable service in the service facet.
type ServiceOption struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	EngName string `json:"engName"`
}

// Facets bundles all derived filter-option lists. Countries, categories and
// services always reflect the whole dataset; cities are scoped to the
// selected country and districts strictly to the selected city.
type Facets struct {
	Countries  []FacetOption   `json:"countries"`
	Cities     []FacetOption   `json:"cities"`
	Districts  []FacetOption   `json:"districts"`
	Categories []string        `json:"categories"`
	Services   []ServiceOption `json:"services"`
}

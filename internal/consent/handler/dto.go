package handler

import (
	"consentgate/internal/consent/models"
	"consentgate/internal/consent/service"
	"consentgate/internal/resource"
)

// UpdateRequest is the body of PUT /consent.
type UpdateRequest struct {
	Decision string `json:"decision"`
}

// ConsentResponse is the controller state a page renders from.
type ConsentResponse struct {
	Decision   models.Decision        `json:"decision"`
	ShowBanner bool                   `json:"showBanner"`
	Detailed   models.DetailedConsent `json:"detailed"`
	Allowed    []string               `json:"allowed"`
	Withheld   []string               `json:"withheld"`
}

// ReceiptResponse carries one signed consent receipt.
type ReceiptResponse struct {
	Receipt string `json:"receipt"`
}

// ResourceEntry describes one catalog resource and its gating state for the
// current visitor.
type ResourceEntry struct {
	Identifier string             `json:"identifier"`
	Category   models.Category    `json:"category"`
	Kind       resource.Kind      `json:"kind"`
	Allowed    bool               `json:"allowed"`
	State      resource.LoadState `json:"state"`
}

// ResourcesResponse is the body of GET /resources.
type ResourcesResponse struct {
	Decision  models.Decision `json:"decision"`
	Resources []ResourceEntry `json:"resources"`
}

func formatConsentResponse(view service.View) ConsentResponse {
	return ConsentResponse{
		Decision:   view.Decision,
		ShowBanner: view.ShowBanner,
		Detailed:   view.Detailed,
		Allowed:    identifiers(view.Allowed),
		Withheld:   identifiers(view.Withheld),
	}
}

func identifiers(descriptors []resource.Descriptor) []string {
	ids := make([]string, 0, len(descriptors))
	for _, d := range descriptors {
		ids = append(ids, d.Identifier)
	}
	return ids
}

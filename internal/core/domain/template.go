package domain

import "strings"

// TemplateID names one of the interchangeable invoice layouts.
type TemplateID string

const (
	TemplateModern     TemplateID = "modern"
	TemplateClassic    TemplateID = "classic"
	TemplateEnterprise TemplateID = "enterprise"
	TemplateFreelancer TemplateID = "freelancer"
	TemplateCorporate  TemplateID = "corporate"
)

// AllTemplates returns every template id in picker order.
func AllTemplates() []TemplateID {
	return []TemplateID{TemplateModern, TemplateClassic, TemplateEnterprise, TemplateFreelancer, TemplateCorporate}
}

// ParseTemplateID matches a template id case-insensitively.
func ParseTemplateID(value string) (TemplateID, bool) {
	candidate := TemplateID(strings.ToLower(strings.TrimSpace(value)))
	for _, id := range AllTemplates() {
		if id == candidate {
			return id, true
		}
	}
	return "", false
}

// Valid reports whether t is a known template id.
func (t TemplateID) Valid() bool {
	_, ok := ParseTemplateID(string(t))
	return ok
}

// Design holds the look-and-feel choices of a draft.
type Design struct {
	PrimaryColor string     `json:"primaryColor"` // "" means use the configured default color
	FontFamily   string     `json:"fontFamily"`
	TemplateID   TemplateID `json:"templateId"`
}

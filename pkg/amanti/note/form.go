package note

import "strings"

type FormInput struct {
	Name    string `json:"name"`
	Details string `json:"details"`
	Style   Style  `json:"style"`
}

func NewFormInput() FormInput {
	return FormInput{Style: DefaultStyle}
}

func (f FormInput) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return &ValidationError{Field: "name", Message: "Please enter a name!"}
	}

	return nil
}

func (f FormInput) style() Style {
	if f.Style == "" {
		return DefaultStyle
	}
	return f.Style
}

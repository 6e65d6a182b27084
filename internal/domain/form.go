package domain

// Draft holds the in-progress values of a row being edited inline.
type Draft struct {
	Type        string
	Description string
	Amount      string
}

// DraftFromEntry captures the current values of an entry into an editable draft.
func DraftFromEntry(e Entry) Draft {
	return Draft{
		Type:        string(e.Type),
		Description: e.Description,
		Amount:      e.Amount.StringFixed(AmountScale),
	}
}

// Input converts the draft into validator input.
func (d Draft) Input() EntryInput {
	return EntryInput{Type: d.Type, Description: d.Description, Amount: d.Amount}
}

// CreateForm is the state of the add-entry form.
type CreateForm struct {
	Type        string
	Description string
	Amount      string
}

// NewCreateForm returns the blank form with income selected.
func NewCreateForm() CreateForm {
	return CreateForm{Type: string(EntryTypeIncome)}
}

// Input converts the form into validator input.
func (f CreateForm) Input() EntryInput {
	return EntryInput{Type: f.Type, Description: f.Description, Amount: f.Amount}
}

// AfterSubmit clears the text fields but keeps the chosen type selected.
func (f CreateForm) AfterSubmit() CreateForm {
	return CreateForm{Type: f.Type}
}

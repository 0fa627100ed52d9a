package editor

import "unicode/utf8"

// PromptPurpose says what a prompt's answer is used for.
type PromptPurpose uint8

const (
	PromptOpen PromptPurpose = iota + 1
	PromptSaveAs
)

// Prompt is a single-line question shown on the message line.
type Prompt struct {
	Label   string
	Answer  string
	Purpose PromptPurpose
}

// AddChar appends ch to the answer.
func (p *Prompt) AddChar(ch rune) {
	p.Answer += string(ch)
}

// RemoveChar drops the last character of the answer.
func (p *Prompt) RemoveChar() {
	if p.Answer == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(p.Answer)
	p.Answer = p.Answer[:len(p.Answer)-size]
}

func (p *Prompt) String() string {
	return p.Label + ": " + p.Answer
}

// Prompt returns the open prompt, or nil.
func (e *Editor) Prompt() *Prompt { return e.prompt }

// PromptActive reports whether a prompt is open.
func (e *Editor) PromptActive() bool { return e.prompt != nil }

// startPrompt opens a prompt.
func (e *Editor) startPrompt(label string, purpose PromptPurpose) error {
	if e.prompt != nil {
		return ErrPromptActive
	}
	e.prompt = &Prompt{Label: label, Purpose: purpose}
	return nil
}

// CancelPrompt closes the prompt without acting on it.
func (e *Editor) CancelPrompt() {
	e.prompt = nil
	e.pending = RequestNone
	e.ClearMessage()
}

// ConfirmPrompt closes the prompt and acts on its answer. An empty answer
// does nothing.
func (e *Editor) ConfirmPrompt() error {
	p := e.prompt
	if p == nil {
		return ErrNoPrompt
	}
	e.CancelPrompt()
	if p.Answer == "" {
		return nil
	}

	var err error
	switch p.Purpose {
	case PromptOpen:
		err = e.Open(p.Answer)
		if err != nil {
			e.SetMessage("Error opening file.")
		}
	case PromptSaveAs:
		err = e.SaveAs(p.Answer)
		if err != nil {
			e.SetMessage("Error writing to file.")
		}
	}
	if err != nil {
		e.log.Error("%s: %v", p.Label, err)
	}
	return err
}

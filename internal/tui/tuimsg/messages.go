// Package tuimsg holds the messages scenes send to the top-level model.
package tuimsg

// ProgramSelectedMsg asks for the detail view of one eligible program
type ProgramSelectedMsg struct {
	Slug string
}

// BackMsg asks to leave the current scene
type BackMsg struct{}

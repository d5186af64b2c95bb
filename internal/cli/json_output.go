// Copyright (c) 2025 The Jot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli implements jot's command-line interface.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// =============================================================================
// JSON RESPONSE ENVELOPE
// =============================================================================

// JSONResponse is the envelope every --json command emits. Scripts can rely
// on the same four fields no matter which command produced the output.
type JSONResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     *string     `json:"error,omitempty"`
	Timestamp string      `json:"timestamp"`
	Command   string      `json:"command,omitempty"`
}

// NewJSONResponse builds a success envelope for a command's payload.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse builds a failure envelope from an error.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	msg := err.Error()
	return &JSONResponse{
		Success:   false,
		Error:     &msg,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponseStr builds a failure envelope from a message string.
func NewJSONErrorResponseStr(command string, msg string) *JSONResponse {
	return &JSONResponse{
		Success:   false,
		Error:     &msg,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print writes the envelope to stdout, indented for humans reading piped
// output.
func (r *JSONResponse) Print() {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON response: %v\n", err)
	}
}

// PrintCompact writes the envelope to stdout on a single line.
func (r *JSONResponse) PrintCompact() {
	encoder := json.NewEncoder(os.Stdout)
	if err := encoder.Encode(r); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON response: %v\n", err)
	}
}

// String returns the envelope as an indented JSON string.
func (r *JSONResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":"failed to encode response: %v"}`, err)
	}
	return string(data)
}

// OutputJSON runs handler and prints its result in an envelope when jsonMode
// is set. Returns true when it handled the output, so callers can fall
// through to their human-readable path otherwise.
func OutputJSON(jsonMode bool, command string, handler func() (interface{}, error)) bool {
	if !jsonMode {
		return false
	}

	data, err := handler()
	if err != nil {
		NewJSONErrorResponse(command, err).Print()
		return true
	}
	NewJSONResponse(command, data).Print()
	return true
}

// StderrPrintf writes formatted output to stderr, keeping stdout clean for
// JSON consumers.
func StderrPrintf(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, format, a...)
}

// StderrPrintln writes a line to stderr.
func StderrPrintln(a ...interface{}) {
	fmt.Fprintln(os.Stderr, a...)
}

// =============================================================================
// PER-COMMAND PAYLOADS
// =============================================================================

// NoteData describes a single note, used by new and cat.
type NoteData struct {
	Path     string   `json:"path"`
	Title    string   `json:"title"`
	Notebook string   `json:"notebook"`
	Tags     []string `json:"tags,omitempty"`
	Created  string   `json:"created,omitempty"`
	Updated  string   `json:"updated,omitempty"`
	Body     string   `json:"body,omitempty"`
}

// NoteSummaryData is one row of a list payload.
type NoteSummaryData struct {
	Path    string   `json:"path"`
	Title   string   `json:"title"`
	Updated string   `json:"updated"`
	Tags    []string `json:"tags,omitempty"`
}

// ListData is the payload for jot list.
type ListData struct {
	Notebook string            `json:"notebook"`
	Notes    []NoteSummaryData `json:"notes"`
	Count    int               `json:"count"`
}

// SearchHitData is one full-text or tag match.
type SearchHitData struct {
	Path    string `json:"path"`
	Title   string `json:"title"`
	Snippet string `json:"snippet,omitempty"`
}

// SearchData is the payload for jot search.
type SearchData struct {
	Query string          `json:"query,omitempty"`
	Tag   string          `json:"tag,omitempty"`
	Hits  []SearchHitData `json:"hits"`
	Count int             `json:"count"`
}

// TagsData is the payload for jot tags.
type TagsData struct {
	Tags  []string `json:"tags"`
	Count int      `json:"count"`
}

// NotebookData is one notebook in a notebooks payload.
type NotebookData struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	NoteCount int    `json:"note_count"`
	Active    bool   `json:"active,omitempty"`
}

// NotebooksData is the payload for jot notebooks.
type NotebooksData struct {
	Notebooks []NotebookData `json:"notebooks"`
	Active    string         `json:"active"`
}

// ReminderData is one reminder in a reminders payload.
type ReminderData struct {
	Message  string `json:"message"`
	DueAt    string `json:"due_at"`
	Notebook string `json:"notebook,omitempty"`
	Fired    bool   `json:"fired"`
}

// RemindersData is the payload for jot reminders.
type RemindersData struct {
	Reminders []ReminderData `json:"reminders"`
	Count     int            `json:"count"`
}

// IndexStatsData is the payload for jot index stats.
type IndexStatsData struct {
	Notes        int    `json:"notes"`
	Tags         int    `json:"tags"`
	LastIndexed  string `json:"last_indexed,omitempty"`
	Indexing     bool   `json:"indexing"`
	DatabasePath string `json:"database_path"`
	DatabaseSize int64  `json:"database_size"`
}

// ConfigData is the payload for jot config verbs.
type ConfigData struct {
	Key    string                 `json:"key,omitempty"`
	Value  interface{}            `json:"value,omitempty"`
	Values map[string]interface{} `json:"values,omitempty"`
	Path   string                 `json:"path,omitempty"`
}

// ExportData is the payload for jot export.
type ExportData struct {
	Source string `json:"source"`
	Output string `json:"output"`
	Format string `json:"format"`
	Size   int64  `json:"size"`
}

// DoctorCheck is one health check result.
type DoctorCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "pass", "warn", or "fail"
	Message string `json:"message"`
	Fix     string `json:"fix,omitempty"`
}

// DoctorSummary aggregates check results.
type DoctorSummary struct {
	Passed  int  `json:"passed"`
	Warned  int  `json:"warned"`
	Failed  int  `json:"failed"`
	Healthy bool `json:"healthy"`
}

// DoctorData is the payload for jot doctor.
type DoctorData struct {
	Checks  []DoctorCheck `json:"checks"`
	Summary DoctorSummary `json:"summary"`
}

// VersionData is the payload for jot version.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version,omitempty"`
}

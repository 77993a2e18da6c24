// Package entity defines market insight results.
package entity

// Engine names the generator that produced an insight.
type Engine string

const (
	EngineTemplate    Engine = "template"
	EngineGemini      Engine = "gemini"
	EngineUnavailable Engine = "unavailable"
)

// Insight is a short market commentary for one symbol.
type Insight struct {
	Symbol      string
	Text        string
	Engine      Engine
	QuoteOrigin string // Origin of the quote the commentary was based on
}

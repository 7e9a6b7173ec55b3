package web

import "net/http"

// DeckEntryInfo is one line of the starter deck for the /api/deck endpoint.
type DeckEntryInfo struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Cost  int    `json:"cost"`
}

func (s *Server) handleDeck(w http.ResponseWriter, r *http.Request) {
	entries := make([]DeckEntryInfo, 0, len(s.config.StarterDeck))
	for _, e := range s.config.StarterDeck {
		info := DeckEntryInfo{Name: e.Name, Count: e.Count}
		if card, ok := s.config.Catalog.Lookup(e.Name); ok {
			info.Cost = card.Cost
		}
		entries = append(entries, info)
	}
	writeJSON(w, entries)
}

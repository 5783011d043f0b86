package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/solaropoly/internal/api/response"
	"github.com/mcoot/solaropoly/internal/board"
)

// BoardHandler serves the built-in board layouts
type BoardHandler struct{}

// NewBoardHandler creates a new board handler
func NewBoardHandler() *BoardHandler {
	return &BoardHandler{}
}

// List handles GET /api/v1/boards
func (h *BoardHandler) List(w http.ResponseWriter, r *http.Request) {
	names := board.Layouts()
	boards := make([]response.Board, 0, len(names))
	for _, name := range names {
		layout, err := board.LoadLayout(name)
		if err != nil {
			WriteError(w, err)
			return
		}
		boards = append(boards, response.BoardFromLayout(layout, false))
	}
	response.JSON(w, http.StatusOK, boards)
}

// Get handles GET /api/v1/boards/{name}
func (h *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	layout, err := board.LoadLayout(mux.Vars(r)["name"])
	if err != nil {
		WriteError(w, err)
		return
	}
	response.JSON(w, http.StatusOK, response.BoardFromLayout(layout, true))
}

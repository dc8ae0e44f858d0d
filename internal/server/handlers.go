package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/leofalp/flowcanvas/core/action"
	"github.com/leofalp/flowcanvas/core/flow"
	"github.com/leofalp/flowcanvas/providers/observability"
	"github.com/leofalp/flowcanvas/providers/sheets"
)

const msgWriteFailed = "Failed to write to Google Sheets"

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now().Unix(), "version": Version})
}

func (s *Server) handleSheetsWrite(c *gin.Context) {
	var req sheets.WriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// A body that does not decode is missing its fields as far as the
		// caller is concerned.
		sendError(c, http.StatusBadRequest, sheets.ErrMissingFields.Error())
		return
	}
	if err := req.Validate(); err != nil {
		sendError(c, http.StatusBadRequest, err.Error())
		return
	}
	if s.sheets == nil {
		sendError(c, http.StatusInternalServerError, sheets.ErrNotConfigured.Error())
		return
	}

	ctx := c.Request.Context()
	result, err := s.sheets.Write(ctx, req)
	if err != nil {
		s.observer.Error(ctx, "sheet write failed",
			observability.String(observability.AttrSpreadsheetID, req.SpreadsheetID),
			observability.Error(err),
		)
		msg := err.Error()
		if msg == "" {
			msg = msgWriteFailed
		}
		sendError(c, http.StatusInternalServerError, msg)
		return
	}

	s.observer.Info(ctx, "sheet written",
		observability.String(observability.AttrSpreadsheetID, req.SpreadsheetID),
		observability.String(observability.AttrSheetRange, result.Range),
		observability.Int(observability.AttrSheetRows, int(result.UpdatedRows)),
	)
	c.JSON(http.StatusOK, result)
}

func (s *Server) handleWorkflow(c *gin.Context) {
	if s.nodes == nil {
		sendError(c, http.StatusNotFound, "no workflow loaded")
		return
	}
	snap := s.nodes.Store().Snapshot()

	views := make([]nodeView, 0, len(snap.Nodes))
	for _, n := range snap.Nodes {
		view := nodeView{
			ID:       n.ID,
			Type:     n.Kind(),
			Position: n.Position,
			Data:     n.Payload,
			Status:   action.StatusIdle,
		}
		if node, err := s.nodes.Get(n.ID); err == nil {
			state := node.State()
			view.Status, view.Message = state.Status, state.Message
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, gin.H{
		"nodes":   views,
		"edges":   edgeViews(snap.Edges),
		"version": snap.Version,
	})
}

// nodeView is a node in the canvas shape plus its action state.
type nodeView struct {
	ID       string        `json:"id"`
	Type     flow.Kind     `json:"type"`
	Position flow.Position `json:"position"`
	Data     flow.Payload  `json:"data"`
	Status   action.Status `json:"status"`
	Message  string        `json:"message,omitempty"`
}

type edgeView struct {
	ID           string `json:"id"`
	Source       string `json:"source"`
	Target       string `json:"target"`
	SourceHandle string `json:"sourceHandle,omitempty"`
	TargetHandle string `json:"targetHandle,omitempty"`
}

func edgeViews(edges []flow.Edge) []edgeView {
	out := make([]edgeView, 0, len(edges))
	for _, e := range edges {
		out = append(out, edgeView{e.ID, e.Source, e.Target, e.SourceHandle, e.TargetHandle})
	}
	return out
}

func (s *Server) handleInputs(c *gin.Context) {
	if s.nodes == nil {
		sendError(c, http.StatusNotFound, "no workflow loaded")
		return
	}
	snippets, err := s.nodes.Inputs(c.Param("id"))
	if err != nil {
		sendError(c, http.StatusNotFound, err.Error())
		return
	}
	if snippets == nil {
		snippets = []flow.Snippet{}
	}
	c.JSON(http.StatusOK, gin.H{"inputs": snippets, "count": len(snippets)})
}

type runRequest struct {
	Input *string `json:"input"`
}

func (s *Server) handleRun(c *gin.Context) {
	if s.nodes == nil {
		sendError(c, http.StatusNotFound, "no workflow loaded")
		return
	}
	node, err := s.nodes.Get(c.Param("id"))
	if err != nil {
		sendError(c, http.StatusNotFound, err.Error())
		return
	}

	var req runRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			sendError(c, http.StatusBadRequest, "Invalid JSON: "+err.Error())
			return
		}
	}
	if req.Input != nil && !node.State().Running() {
		node.SetInput(*req.Input)
	}

	if err := node.Run(c.Request.Context()); err != nil {
		c.JSON(statusFor(err), gin.H{
			"error":    action.Message(err),
			"category": action.Classify(err),
		})
		return
	}

	current, _ := s.nodes.Store().Node(node.ID())
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"node":    current,
	})
}

type connectRequest struct {
	Source string `json:"source" binding:"required"`
	Target string `json:"target" binding:"required"`
}

func (s *Server) handleConnect(c *gin.Context) {
	if s.nodes == nil {
		sendError(c, http.StatusNotFound, "no workflow loaded")
		return
	}
	var req connectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		sendError(c, http.StatusBadRequest, "Missing required fields: source, target")
		return
	}
	edge := s.nodes.Store().Connect(flow.NewEdge(req.Source, req.Target))
	c.JSON(http.StatusCreated, edgeView{edge.ID, edge.Source, edge.Target, edge.SourceHandle, edge.TargetHandle})
}

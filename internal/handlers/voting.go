package handlers

import (
	"errors"
	"net/http"

	"github.com/14kear/poll-ledger/internal/services"
	"github.com/gin-gonic/gin"
)

type VotingHandler struct {
	votingService *services.Voting
}

type CreatePollRequest struct {
	PollID   string   `json:"poll_id" binding:"required"`
	Question string   `json:"question" binding:"required"`
	Options  []string `json:"options"`
}

type CastVoteRequest struct {
	Option string `json:"option" binding:"required"`
}

func NewVotingHandler(votingService *services.Voting) *VotingHandler {
	return &VotingHandler{votingService: votingService}
}

func (v *VotingHandler) CreatePoll(c *gin.Context) {
	var req CreatePollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	creator, ok := callerAddress(c)
	if !ok {
		return
	}

	err := v.votingService.CreatePoll(c.Request.Context(), creator, req.PollID, req.Question, req.Options)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"poll_id": req.PollID})
}

func (v *VotingHandler) CastVote(c *gin.Context) {
	var req CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	voter, ok := callerAddress(c)
	if !ok {
		return
	}

	pollID := c.Param("id")

	err := v.votingService.CastVote(c.Request.Context(), voter, pollID, req.Option)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"poll_id": pollID, "option": req.Option})
}

func (v *VotingHandler) GetPoll(c *gin.Context) {
	pollID := c.Param("id")

	poll, found, err := v.votingService.GetPoll(c.Request.Context(), pollID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !found {
		c.JSON(http.StatusOK, gin.H{"poll": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"poll": poll})
}

func (v *VotingHandler) GetPolls(c *gin.Context) {
	polls, err := v.votingService.GetPolls(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"polls": polls})
}

func (v *VotingHandler) GetVote(c *gin.Context) {
	pollID := c.Param("id")
	address := c.Param("address")

	ballot, found, err := v.votingService.GetVote(c.Request.Context(), address, pollID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if !found {
		c.JSON(http.StatusOK, gin.H{"vote": nil})
		return
	}

	c.JSON(http.StatusOK, gin.H{"vote": ballot})
}

func callerAddress(c *gin.Context) (string, bool) {
	addressValue, exists := c.Get("address")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}

	address, ok := addressValue.(string)
	if !ok || address == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid address in context"})
		return "", false
	}

	return address, true
}

func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTooManyOptions):
		c.JSON(http.StatusBadRequest, gin.H{"error": services.ErrTooManyOptions.Error()})
	case errors.Is(err, services.ErrPollNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": services.ErrPollNotFound.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": services.ErrUnauthorized.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

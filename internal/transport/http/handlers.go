package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/solacehq/solace/internal/domain"
	"github.com/solacehq/solace/internal/genai"
	"github.com/solacehq/solace/internal/store"
)

// Handlers serves the account and support-chat endpoints. These are plain
// CRUD around the room subsystem and never touch room state.
type Handlers struct {
	Users *store.Users
	Gen   genai.Generator
}

func NewHandlers(users *store.Users, gen genai.Generator) *Handlers {
	return &Handlers{Users: users, Gen: gen}
}

type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

func (h *Handlers) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := domain.ValidateCredentials(req.Username, req.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}

	acct := &domain.Account{
		Username:      req.Username,
		PasswordHash:  string(hash),
		Email:         req.Email,
		FirstTimeUser: true,
	}
	if err := h.Users.Insert(acct); err != nil {
		if errors.Is(err, store.ErrUserExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
			return
		}
		log.Error().Err(err).Str("module", "transport.http").Msg("signup insert")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"username": acct.Username})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	acct, err := h.Users.FindByUsername(req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user does not exist"})
			return
		}
		log.Error().Err(err).Str("module", "transport.http").Msg("login lookup")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "incorrect password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":      acct.Username,
		"firstTimeUser": acct.FirstTimeUser,
	})
}

type assessmentRequest struct {
	Username string   `json:"username"`
	Answers  []string `json:"answers"`
}

// Assessment runs the questionnaire answers through the generator and
// appends the result to the user's history.
func (h *Handlers) Assessment(c *gin.Context) {
	var req assessmentRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Answers) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no answers provided"})
		return
	}

	prompt := fmt.Sprintf(
		"Please analyze these PHQ-9 answers and give a compassionate psychological response in around 6-7 words:\n%s",
		strings.Join(req.Answers, "\n"),
	)
	reply, err := h.Gen.Generate(c.Request.Context(), prompt)
	if err != nil {
		log.Error().Err(err).Str("module", "transport.http").Msg("assessment generate")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}

	err = h.Users.AppendAssessment(req.Username, store.Assessment{
		Date:    time.Now().UTC(),
		Answers: req.Answers,
		Reply:   reply,
	})
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		log.Error().Err(err).Str("module", "transport.http").Msg("assessment append")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

type chatRequest struct {
	UserInput string `json:"userInput"`
}

const chatInstruction = `Take the user's input above and respond as a supportive chatbot. Keep answers short, clear, and motivating, with a positive and encouraging tone. Focus on actionable steps and uplifting guidance instead of long explanations. If the input contains any mention of self-harm or suicide, do not continue the conversation; instead reply only with the crisis helpline numbers and a link to /peer_support.`

// Chat is the support chatbot endpoint, unrelated to the room subsystem.
func (h *Handlers) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserInput == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "userInput is required"})
		return
	}

	reply, err := h.Gen.Generate(c.Request.Context(), req.UserInput+"\n\n"+chatInstruction)
	if err != nil {
		log.Error().Err(err).Str("module", "transport.http").Msg("chat generate")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": reply})
}

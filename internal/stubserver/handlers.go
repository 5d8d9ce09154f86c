package stubserver

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/walkcore/walkcore-client/internal/models"
)

// Step-derived stat formulas: 0.8m per step, 4 kcal per 100 steps, 100
// steps per active minute
const (
	metersPerStep     = 0.8
	caloriesPerStep   = 0.04
	stepsPerActiveMin = 100
)

func mustHash(password string) []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return hash
}

func errorJSON(c *gin.Context, code int, message string) {
	c.JSON(code, models.ErrorResponse{Status: "error", Message: message})
}

func (s *Server) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" || strings.TrimSpace(req.Password) == "" {
		errorJSON(c, http.StatusBadRequest, "username, email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, "failed to process password")
		return
	}

	user := &userRecord{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := s.store.createUser(user); err != nil {
		errorJSON(c, http.StatusConflict, "email already registered")
		return
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		s.logger.Error("Failed to issue token", "error", err)
		errorJSON(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	s.logger.Info("User registered", "user_id", user.ID, "username", user.Username)
	c.JSON(http.StatusOK, models.AuthResponse{
		Status:  "ok",
		Message: "registered",
		Data: models.AuthData{
			Token: token,
			User:  models.User{ID: user.ID, Username: user.Username, Email: user.Email},
		},
	})
}

func (s *Server) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, ok := s.store.userByEmail(req.Email)
	if !ok || bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)) != nil {
		errorJSON(c, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		s.logger.Error("Failed to issue token", "error", err)
		errorJSON(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	s.logger.Info("User logged in", "user_id", user.ID)
	c.JSON(http.StatusOK, models.AuthResponse{
		Status:  "ok",
		Message: "logged in",
		Data: models.AuthData{
			Token: token,
			User:  models.User{ID: user.ID, Username: user.Username, Email: user.Email},
		},
	})
}

func (s *Server) homeOverview(c *gin.Context) {
	userID := c.GetString("userID")
	user, ok := s.store.userByID(userID)
	if !ok {
		errorJSON(c, http.StatusNotFound, "user not found")
		return
	}

	steps, sessionsJoined := s.store.totalStepsFor(userID)
	c.JSON(http.StatusOK, models.OverviewResponse{
		Data: models.HomeData{
			Profile: models.UserProfile{
				ID:       user.ID,
				Username: user.Username,
				Email:    user.Email,
				Gender:   user.Gender,
			},
			Stats: models.UserStats{
				TotalSteps:          strconv.Itoa(steps),
				TotalDistance:       formatDistance(steps),
				TotalActiveTime:     steps / stepsPerActiveMin,
				TotalCaloriesBurned: int(float64(steps) * caloriesPerStep),
				LongestStreak:       sessionsJoined,
			},
		},
	})
}

func (s *Server) activeSession(c *gin.Context) {
	userID := c.GetString("userID")
	c.JSON(http.StatusOK, models.ActiveSessionResponse{
		Data: s.store.activeSessionFor(userID),
	})
}

func (s *Server) listSessions(c *gin.Context) {
	c.JSON(http.StatusOK, models.SessionListResponse{Data: s.store.listSessions()})
}

func (s *Server) sessionDetail(c *gin.Context) {
	session, ok := s.store.session(c.Param("id"))
	if !ok {
		errorJSON(c, http.StatusNotFound, "session not found")
		return
	}
	c.JSON(http.StatusOK, models.SessionResponse{Data: session})
}

func (s *Server) sessionParticipants(c *gin.Context) {
	sessionID := c.Param("id")
	if _, ok := s.store.session(sessionID); !ok {
		errorJSON(c, http.StatusNotFound, "session not found")
		return
	}

	records := s.store.sessionParticipants(sessionID)
	participants := make([]models.Participant, 0, len(records))
	for _, record := range records {
		username := ""
		if user, ok := s.store.userByID(record.UserID); ok {
			username = user.Username
		}
		participants = append(participants, models.Participant{
			UserID:   record.UserID,
			Username: username,
			Status:   record.Status,
			IsAdmin:  record.IsAdmin,
		})
	}
	c.JSON(http.StatusOK, models.ParticipantListResponse{Data: participants})
}

func (s *Server) sessionLeaderboard(c *gin.Context) {
	sessionID := c.Param("id")
	if _, ok := s.store.session(sessionID); !ok {
		errorJSON(c, http.StatusNotFound, "session not found")
		return
	}

	records := s.store.sessionParticipants(sessionID)
	usernames := make(map[string]string, len(records))
	for _, record := range records {
		if user, ok := s.store.userByID(record.UserID); ok {
			usernames[record.UserID] = user.Username
		}
	}

	// Steps descending, username ascending on ties, so ranks are stable
	sort.Slice(records, func(i, j int) bool {
		if records[i].Steps != records[j].Steps {
			return records[i].Steps > records[j].Steps
		}
		return usernames[records[i].UserID] < usernames[records[j].UserID]
	})

	entries := make([]models.LeaderboardEntry, 0, len(records))
	for i, record := range records {
		entries = append(entries, models.LeaderboardEntry{
			Rank:           i + 1,
			UserID:         record.UserID,
			TotalSteps:     record.Steps,
			ApproxDistance: formatDistance(record.Steps),
			CaloriesBurned: int(float64(record.Steps) * caloriesPerStep),
			User:           models.UserName{Username: usernames[record.UserID]},
		})
	}
	c.JSON(http.StatusOK, models.LeaderboardResponse{Data: entries})
}

func (s *Server) createSession(c *gin.Context) {
	var req models.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		errorJSON(c, http.StatusBadRequest, "title is required")
		return
	}

	userID := c.GetString("userID")
	session := models.Session{
		ID:              uuid.New().String(),
		Title:           req.Title,
		Description:     req.Description,
		CreatorID:       userID,
		Mode:            req.Mode,
		Status:          models.SessionStatusPlanned,
		Visibility:      req.Visibility,
		MaxParticipants: req.MaxParticipants,
		StepTarget:      req.StepTarget,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
	}
	s.store.addSession(session)
	s.store.join(session.ID, userID, "JOINED", true)

	s.logger.Info("Session created", "session_id", session.ID, "creator_id", userID)
	c.JSON(http.StatusCreated, models.SessionResponse{Data: session})
}

func (s *Server) listFriends(c *gin.Context) {
	userID := c.GetString("userID")
	c.JSON(http.StatusOK, models.FriendListResponse{
		Friends: s.store.friendsOf(userID),
	})
}

func formatDistance(steps int) string {
	return fmt.Sprintf("%.2f km", float64(steps)*metersPerStep/1000)
}

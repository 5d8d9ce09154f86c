package stubserver

import (
	"fmt"
	"sort"
	"sync"

	"github.com/walkcore/walkcore-client/internal/models"
)

// userRecord is a stored account
type userRecord struct {
	ID           string
	Username     string
	Email        string
	Gender       string
	PasswordHash []byte
}

// participantRecord is one user's membership in a session, with the step
// count accumulated so far
type participantRecord struct {
	UserID  string
	Status  string
	IsAdmin bool
	Steps   int
}

// memStore is the in-memory backing state of the stub server. Everything
// lives behind one mutex; the stub is a dev/test tool, not a database.
type memStore struct {
	mu           sync.RWMutex
	usersByID    map[string]*userRecord
	usersByEmail map[string]*userRecord
	sessions     map[string]models.Session
	sessionOrder []string
	participants map[string][]participantRecord
}

func newMemStore() *memStore {
	return &memStore{
		usersByID:    make(map[string]*userRecord),
		usersByEmail: make(map[string]*userRecord),
		sessions:     make(map[string]models.Session),
		participants: make(map[string][]participantRecord),
	}
}

func (s *memStore) createUser(user *userRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.usersByEmail[user.Email]; exists {
		return fmt.Errorf("email already registered")
	}
	s.usersByID[user.ID] = user
	s.usersByEmail[user.Email] = user
	return nil
}

func (s *memStore) userByEmail(email string) (*userRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.usersByEmail[email]
	return user, ok
}

func (s *memStore) userByID(id string) (*userRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.usersByID[id]
	return user, ok
}

func (s *memStore) addSession(session models.Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	s.sessionOrder = append(s.sessionOrder, session.ID)
}

func (s *memStore) listSessions() []models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := make([]models.Session, 0, len(s.sessionOrder))
	for _, id := range s.sessionOrder {
		sessions = append(sessions, s.sessions[id])
	}
	return sessions
}

func (s *memStore) session(id string) (models.Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

func (s *memStore) join(sessionID, userID, status string, isAdmin bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.participants[sessionID] {
		if p.UserID == userID {
			return
		}
	}
	s.participants[sessionID] = append(s.participants[sessionID], participantRecord{
		UserID:  userID,
		Status:  status,
		IsAdmin: isAdmin,
	})
}

func (s *memStore) addSteps(sessionID, userID string, steps int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.participants[sessionID]
	for i := range records {
		if records[i].UserID == userID {
			records[i].Steps += steps
			return
		}
	}
}

func (s *memStore) sessionParticipants(sessionID string) []participantRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := s.participants[sessionID]
	out := make([]participantRecord, len(records))
	copy(out, records)
	return out
}

// activeSessionFor returns the single ongoing session the user participates
// in, or nil. At most one session per user is ever ONGOING in the stub.
func (s *memStore) activeSessionFor(userID string) *models.ActiveSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range s.sessionOrder {
		session := s.sessions[id]
		if session.Status != models.SessionStatusOngoing {
			continue
		}
		for _, p := range s.participants[id] {
			if p.UserID != userID {
				continue
			}
			return &models.ActiveSession{
				SessionID:         session.ID,
				Title:             session.Title,
				Status:            session.Status,
				ParticipantStatus: p.Status,
				StartTime:         session.StartTime,
				EndTime:           session.EndTime,
				TotalSteps:        p.Steps,
			}
		}
	}
	return nil
}

// friendsOf lists every other registered user, sorted by username for a
// stable response
func (s *memStore) friendsOf(userID string) []models.FriendSimple {
	s.mu.RLock()
	defer s.mu.RUnlock()
	friends := make([]models.FriendSimple, 0, len(s.usersByID))
	for id, user := range s.usersByID {
		if id == userID {
			continue
		}
		friends = append(friends, models.FriendSimple{ID: user.ID, Username: user.Username})
	}
	sort.Slice(friends, func(i, j int) bool { return friends[i].Username < friends[j].Username })
	return friends
}

// totalStepsFor sums the user's steps across all sessions
func (s *memStore) totalStepsFor(userID string) (steps int, sessionsJoined int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, records := range s.participants {
		for _, p := range records {
			if p.UserID == userID {
				steps += p.Steps
				sessionsJoined++
			}
		}
	}
	return steps, sessionsJoined
}

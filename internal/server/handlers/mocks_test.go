package handlers

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/iudanet/gamebackend/internal/models"
	"github.com/iudanet/gamebackend/internal/server/storage"
)

// hashPasswordForTest uses the minimum bcrypt cost to keep tests fast
func hashPasswordForTest(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hash), err
}

func comparePasswordForTest(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// mockUserStorage is a mock implementation of UserStorage for testing
type mockUserStorage struct {
	users        map[string]*models.User // username -> User
	createError  error
	getUserError error
	deleteError  error
	deletedIDs   []string
}

func newMockUserStorage() *mockUserStorage {
	return &mockUserStorage{users: make(map[string]*models.User)}
}

func (m *mockUserStorage) CreateUser(ctx context.Context, user *models.User) error {
	if m.createError != nil {
		return m.createError
	}
	if _, exists := m.users[user.Username]; exists {
		return storage.ErrUserAlreadyExists
	}
	m.users[user.Username] = user
	return nil
}

func (m *mockUserStorage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	user, ok := m.users[username]
	if !ok {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStorage) GetUserByUsernameAndEmail(ctx context.Context, username, email string) (*models.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	user, ok := m.users[username]
	if !ok || user.Email != email {
		return nil, storage.ErrUserNotFound
	}
	return user, nil
}

func (m *mockUserStorage) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if m.getUserError != nil {
		return nil, m.getUserError
	}
	for _, user := range m.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (m *mockUserStorage) DeleteUser(ctx context.Context, id string) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	for username, user := range m.users {
		if user.ID == id {
			delete(m.users, username)
			m.deletedIDs = append(m.deletedIDs, id)
			return nil
		}
	}
	return storage.ErrUserNotFound
}

func (m *mockUserStorage) UpdateLastLogin(ctx context.Context, userID string, lastLogin time.Time) error {
	return nil
}

// mockTokenStorage is a mock implementation of TokenStorage for testing
type mockTokenStorage struct {
	tokens         map[string]*models.AuthToken // userID -> AuthToken
	getError       error
	revokedUserIDs []string
}

func newMockTokenStorage() *mockTokenStorage {
	return &mockTokenStorage{tokens: make(map[string]*models.AuthToken)}
}

func (m *mockTokenStorage) GetOrCreateToken(ctx context.Context, candidate *models.AuthToken) (*models.AuthToken, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	if existing, ok := m.tokens[candidate.UserID]; ok {
		return existing, nil
	}
	m.tokens[candidate.UserID] = candidate
	return candidate, nil
}

func (m *mockTokenStorage) GetTokenByKey(ctx context.Context, key string) (*models.AuthToken, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	for _, token := range m.tokens {
		if token.Key == key {
			return token, nil
		}
	}
	return nil, storage.ErrTokenNotFound
}

func (m *mockTokenStorage) DeleteUserTokens(ctx context.Context, userID string) (int, error) {
	m.revokedUserIDs = append(m.revokedUserIDs, userID)
	if _, ok := m.tokens[userID]; !ok {
		return 0, nil
	}
	delete(m.tokens, userID)
	return 1, nil
}

// mockScoreStorage is a mock implementation of ScoreStorage for
// testing. It mirrors the unique (user, value) behavior of the real
// storage.
type mockScoreStorage struct {
	scores      []*models.Score
	listError   error
	upsertError error
}

func (m *mockScoreStorage) ListScores(ctx context.Context) ([]*models.Score, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	return m.scores, nil
}

func (m *mockScoreStorage) GetScoreByUserAndValue(ctx context.Context, userID string, value int64) (*models.Score, error) {
	for _, score := range m.scores {
		if score.UserID == userID && score.Score == value {
			return score, nil
		}
	}
	return nil, storage.ErrScoreNotFound
}

func (m *mockScoreStorage) UpsertScore(ctx context.Context, score *models.Score) (*models.Score, error) {
	if m.upsertError != nil {
		return nil, m.upsertError
	}
	for _, existing := range m.scores {
		if existing.UserID == score.UserID && existing.Score == score.Score {
			existing.UpdatedAt = score.UpdatedAt
			return existing, nil
		}
	}
	m.scores = append(m.scores, score)
	return score, nil
}

// mockSavegameStorage is a mock implementation of SavegameStorage for testing
type mockSavegameStorage struct {
	savegames map[string]*models.Savegame // id -> Savegame
	getError  error
	saveError error
}

func newMockSavegameStorage() *mockSavegameStorage {
	return &mockSavegameStorage{savegames: make(map[string]*models.Savegame)}
}

func (m *mockSavegameStorage) ListSavegamesByOwner(ctx context.Context, ownerID string) ([]*models.Savegame, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	result := make([]*models.Savegame, 0)
	for _, savegame := range m.savegames {
		if savegame.OwnerID == ownerID {
			result = append(result, savegame)
		}
	}
	return result, nil
}

func (m *mockSavegameStorage) ListSavegamesByOwnerAndType(ctx context.Context, ownerID, savegameType string) ([]*models.Savegame, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	result := make([]*models.Savegame, 0)
	for _, savegame := range m.savegames {
		if savegame.OwnerID == ownerID && savegame.Type == savegameType {
			result = append(result, savegame)
		}
	}
	return result, nil
}

func (m *mockSavegameStorage) GetSavegameByID(ctx context.Context, id string) (*models.Savegame, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	savegame, ok := m.savegames[id]
	if !ok {
		return nil, storage.ErrSavegameNotFound
	}
	return savegame, nil
}

func (m *mockSavegameStorage) CreateSavegame(ctx context.Context, savegame *models.Savegame) error {
	if m.saveError != nil {
		return m.saveError
	}
	m.savegames[savegame.ID] = savegame
	return nil
}

func (m *mockSavegameStorage) UpdateSavegame(ctx context.Context, savegame *models.Savegame) error {
	if m.saveError != nil {
		return m.saveError
	}
	if _, ok := m.savegames[savegame.ID]; !ok {
		return storage.ErrSavegameNotFound
	}
	m.savegames[savegame.ID] = savegame
	return nil
}

package session

import (
	"errors"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Storage keys, one row each, matching what the mobile client persisted.
const (
	keyAccessToken  = "accessToken"
	keyRefreshToken = "refreshToken"
	keyRole         = "userRole"
	keyEmail        = "userEmail"
	keyUserID       = "userId"
	keyName         = "userName"
	keySurname      = "userSurname"
)

// Entry is one key-value row of the local session database.
type Entry struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value string `gorm:"column:value"`
}

func (Entry) TableName() string { return "session_entries" }

// Credentials is the token triple that authorizes API calls. Rotated on a
// successful refresh, destroyed on logout or a confirmed-invalid refresh
// token.
type Credentials struct {
	AccessToken  string
	RefreshToken string
	Role         string
}

// Profile holds the user fields restored on process start.
type Profile struct {
	Email   string
	UserID  string
	Name    string
	Surname string
}

// Store is the process-wide credential/profile store. Every mutation goes
// through one mutex, so concurrent call chains cannot interleave partial
// writes of a token pair.
type Store struct {
	mu sync.Mutex
	db *gorm.DB
}

// Open opens (creating if needed) the session database at path. Use
// ":memory:" in tests.
func Open(path string) (*Store, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Credentials returns the currently stored token triple. Missing keys come
// back as empty strings; they are not an error.
func (s *Store) Credentials() (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	access, err := s.get(keyAccessToken)
	if err != nil {
		return Credentials{}, err
	}
	refresh, err := s.get(keyRefreshToken)
	if err != nil {
		return Credentials{}, err
	}
	role, err := s.get(keyRole)
	if err != nil {
		return Credentials{}, err
	}
	return Credentials{AccessToken: access, RefreshToken: refresh, Role: role}, nil
}

// SetCredentials stores a full token triple, as produced by a login.
func (s *Store) SetCredentials(c Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setAll(map[string]string{
		keyAccessToken:  c.AccessToken,
		keyRefreshToken: c.RefreshToken,
		keyRole:         c.Role,
	})
}

// SetTokens rotates the access token after a successful refresh. The new
// refresh token is optional; an empty value keeps the stored one.
func (s *Store) SetTokens(accessToken, refreshToken string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := map[string]string{keyAccessToken: accessToken}
	if refreshToken != "" {
		values[keyRefreshToken] = refreshToken
	}
	return s.setAll(values)
}

// ClearCredentials removes the token triple. Profile fields are kept, as
// the mobile client's logout did.
func (s *Store) ClearCredentials() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Delete(&Entry{}, "key IN ?", []string{keyAccessToken, keyRefreshToken, keyRole}).Error
}

// Profile returns the stored user fields.
func (s *Store) Profile() (Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var p Profile
	var err error
	if p.Email, err = s.get(keyEmail); err != nil {
		return Profile{}, err
	}
	if p.UserID, err = s.get(keyUserID); err != nil {
		return Profile{}, err
	}
	if p.Name, err = s.get(keyName); err != nil {
		return Profile{}, err
	}
	if p.Surname, err = s.get(keySurname); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// SetProfile stores the non-empty user fields. Empty fields keep their
// stored values.
func (s *Store) SetProfile(p Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := map[string]string{}
	if p.Email != "" {
		values[keyEmail] = p.Email
	}
	if p.UserID != "" {
		values[keyUserID] = p.UserID
	}
	if p.Name != "" {
		values[keyName] = p.Name
	}
	if p.Surname != "" {
		values[keySurname] = p.Surname
	}
	if len(values) == 0 {
		return nil
	}
	return s.setAll(values)
}

// IsAuthenticated reports whether a complete session (access token, refresh
// token and role) is stored.
func (s *Store) IsAuthenticated() (bool, error) {
	c, err := s.Credentials()
	if err != nil {
		return false, err
	}
	return c.AccessToken != "" && c.RefreshToken != "" && c.Role != "", nil
}

func (s *Store) get(key string) (string, error) {
	var e Entry
	err := s.db.First(&e, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return e.Value, nil
}

func (s *Store) setAll(values map[string]string) error {
	entries := make([]Entry, 0, len(values))
	for k, v := range values {
		entries = append(entries, Entry{Key: k, Value: v})
	}
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&entries).Error
}

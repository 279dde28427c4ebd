package verification

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Den2856/sturdy-octo-happiness/internal/domain"
	"github.com/Den2856/sturdy-octo-happiness/internal/mailer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pendingCode struct {
	hash   []byte
	expiry time.Time
}

// memoryStore mirrors the single-statement consume of the postgres store.
type memoryStore struct {
	mu    sync.Mutex
	users map[string]*pendingCode
}

func newMemoryStore(emails ...string) *memoryStore {
	s := &memoryStore{users: make(map[string]*pendingCode)}
	for _, e := range emails {
		s.users[e] = nil
	}
	return s
}

func (s *memoryStore) SetVerificationCode(_ context.Context, email string, hash []byte, expiry time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[email]; !ok {
		return domain.ErrRecordNotFound
	}
	s.users[email] = &pendingCode{hash: hash, expiry: expiry}
	return nil
}

func (s *memoryStore) ConsumeVerificationCode(_ context.Context, email string, hash []byte, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := s.users[email]
	if p == nil || !bytes.Equal(p.hash, hash) || !p.expiry.After(now) {
		return domain.ErrRecordNotFound
	}
	s.users[email] = nil
	return nil
}

type failingMailer struct{}

func (failingMailer) Send(string, string, any) error {
	return errors.New("smtp unavailable")
}

type fakeThrottle struct {
	retryAfter time.Duration
	err        error
	released   int
}

func (f *fakeThrottle) Acquire(context.Context, string) (time.Duration, error) {
	return f.retryAfter, f.err
}

func (f *fakeThrottle) Release(context.Context, string) error {
	f.released++
	return nil
}

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func sentCode(t *testing.T, m *mailer.MockMailer) string {
	t.Helper()

	emails := m.GetSentEmails()
	require.NotEmpty(t, emails)

	data, ok := emails[len(emails)-1].Data.(map[string]any)
	require.True(t, ok)

	code, ok := data["code"].(string)
	require.True(t, ok)

	return code
}

func TestIssueAndCheckOnce(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore("a@b.com")
	m := mailer.NewMockMailer()
	c := &clock{t: time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)}

	gate := NewGate(store, m, WithClock(c.now))

	require.NoError(t, gate.Issue(ctx, "a@b.com"))

	emails := m.GetSentEmails()
	require.Len(t, emails, 1)
	assert.Equal(t, "a@b.com", emails[0].Recipient)
	assert.Equal(t, "verification_code.tmpl", emails[0].TemplateFile)

	code := sentCode(t, m)
	assert.Len(t, code, 6)

	c.t = c.t.Add(9 * time.Minute)
	assert.NoError(t, gate.Check(ctx, "a@b.com", code))
	assert.ErrorIs(t, gate.Check(ctx, "a@b.com", code), domain.ErrInvalidVerificationCode)
}

func TestCheckRejectsExpiredCode(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore("a@b.com")
	m := mailer.NewMockMailer()
	c := &clock{t: time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)}

	gate := NewGate(store, m, WithClock(c.now))
	require.NoError(t, gate.Issue(ctx, "a@b.com"))

	c.t = c.t.Add(10 * time.Minute)
	assert.ErrorIs(t, gate.Check(ctx, "a@b.com", sentCode(t, m)), domain.ErrInvalidVerificationCode)
}

func TestNewCodeSupersedesPending(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore("a@b.com")
	m := mailer.NewMockMailer()

	// Two distinct codes: 100000 first, then 100001.
	random := bytes.NewReader([]byte{0, 0, 0, 0, 0, 1})
	gate := NewGate(store, m, WithRandom(random))

	require.NoError(t, gate.Issue(ctx, "a@b.com"))
	first := sentCode(t, m)
	require.NoError(t, gate.Issue(ctx, "a@b.com"))
	second := sentCode(t, m)

	require.Equal(t, "100000", first)
	require.Equal(t, "100001", second)

	assert.ErrorIs(t, gate.Check(ctx, "a@b.com", first), domain.ErrInvalidVerificationCode)
	assert.NoError(t, gate.Check(ctx, "a@b.com", second))
}

func TestCheckFailures(t *testing.T) {
	ctx := context.Background()
	store := newMemoryStore("a@b.com")
	m := mailer.NewMockMailer()
	gate := NewGate(store, m)

	require.NoError(t, gate.Issue(ctx, "a@b.com"))
	code := sentCode(t, m)

	wrong := "000000"
	if code == wrong {
		wrong = "999999"
	}

	tests := []struct {
		name  string
		email string
		code  string
	}{
		{"wrong code", "a@b.com", wrong},
		{"empty code", "a@b.com", ""},
		{"not numeric", "a@b.com", "12ab56"},
		{"too long", "a@b.com", code + "1"},
		{"other email", "c@d.com", code},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, gate.Check(ctx, tt.email, tt.code), domain.ErrInvalidVerificationCode)
		})
	}

	assert.NoError(t, gate.Check(ctx, "a@b.com", " "+code+" "))
}

func TestIssueUnknownEmail(t *testing.T) {
	m := mailer.NewMockMailer()
	gate := NewGate(newMemoryStore(), m)

	err := gate.Issue(context.Background(), "nobody@b.com")
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	assert.Empty(t, m.GetSentEmails())
}

func TestIssueThrottle(t *testing.T) {
	ctx := context.Background()

	t.Run("cooldown active", func(t *testing.T) {
		m := mailer.NewMockMailer()
		gate := NewGate(newMemoryStore("a@b.com"), m, WithThrottle(&fakeThrottle{retryAfter: 42 * time.Second}))

		err := gate.Issue(ctx, "a@b.com")

		var cooldown *CooldownError
		require.ErrorAs(t, err, &cooldown)
		assert.Equal(t, 42*time.Second, cooldown.RetryAfter)
		assert.Empty(t, m.GetSentEmails())
	})

	t.Run("throttle error does not block", func(t *testing.T) {
		m := mailer.NewMockMailer()
		gate := NewGate(newMemoryStore("a@b.com"), m, WithThrottle(&fakeThrottle{err: errors.New("redis down")}))

		assert.NoError(t, gate.Issue(ctx, "a@b.com"))
		assert.Len(t, m.GetSentEmails(), 1)
	})

	t.Run("mail failure releases cooldown", func(t *testing.T) {
		throttle := &fakeThrottle{}
		gate := NewGate(newMemoryStore("a@b.com"), failingMailer{}, WithThrottle(throttle))

		assert.Error(t, gate.Issue(ctx, "a@b.com"))
		assert.Equal(t, 1, throttle.released)
	})
}

func TestConcurrentChecksConsumeOnce(t *testing.T) {
	ctx := context.Background()
	m := mailer.NewMockMailer()
	gate := NewGate(newMemoryStore("a@b.com"), m)

	require.NoError(t, gate.Issue(ctx, "a@b.com"))
	code := sentCode(t, m)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)

	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if gate.Check(ctx, "a@b.com", code) == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}

	wg.Wait()
	assert.Equal(t, 1, successes)
}

type countingLimiter struct {
	max    int
	counts map[string]int
}

func (l *countingLimiter) Blocked(_ context.Context, email string) (bool, error) {
	return l.counts[email] >= l.max, nil
}

func (l *countingLimiter) Failed(_ context.Context, email string) error {
	l.counts[email]++
	return nil
}

func (l *countingLimiter) Reset(_ context.Context, email string) error {
	delete(l.counts, email)
	return nil
}

func TestCheckStopsAfterTooManyWrongCodes(t *testing.T) {
	ctx := context.Background()
	m := mailer.NewMockMailer()
	limiter := &countingLimiter{max: 3, counts: make(map[string]int)}

	// First code 100000, second 100001.
	random := bytes.NewReader([]byte{0, 0, 0, 0, 0, 1})
	gate := NewGate(newMemoryStore("a@b.com"), m, WithRandom(random), WithAttemptLimiter(limiter))

	require.NoError(t, gate.Issue(ctx, "a@b.com"))
	code := sentCode(t, m)
	require.Equal(t, "100000", code)

	for range 3 {
		assert.ErrorIs(t, gate.Check(ctx, "a@b.com", "999999"), domain.ErrInvalidVerificationCode)
	}

	assert.ErrorIs(t, gate.Check(ctx, "a@b.com", code), domain.ErrInvalidVerificationCode,
		"correct code must be refused once the limit is reached")

	require.NoError(t, gate.Issue(ctx, "a@b.com"))
	assert.NoError(t, gate.Check(ctx, "a@b.com", sentCode(t, m)))
	assert.Empty(t, limiter.counts)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package ballot

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Sadiq-Teslim/ules-voting-sub000/models"
	"github.com/Sadiq-Teslim/ules-voting-sub000/retry"
)

// GenericFailureMessage is shown when the tally service gave no message.
const GenericFailureMessage = "Your vote could not be submitted. Please try again."

var (
	ErrInvalidTransition  = errors.New("invalid ballot transition")
	ErrSubmissionInFlight = errors.New("ballot submission already in progress")
	ErrCatalogNotLoaded   = errors.New("categories not loaded")
	ErrIdentityRequired   = errors.New("validated voter identity required")
)

// Submitter sends a ballot to the tally service and returns its message.
type Submitter interface {
	Submit(ctx context.Context, p models.SubmissionPayload) (string, error)
}

// Fingerprinter produces the device fingerprint for a submission.
type Fingerprinter interface {
	Generate(ctx context.Context) string
}

type Config struct {
	Identity  models.VoterIdentity
	Submitter Submitter
	Policy    retry.Policy
	// OnSucceeded runs after the tally service accepted the ballot. It is
	// where the session's identity gets invalidated.
	OnSucceeded func(ctx context.Context, r models.Receipt) error
	// OnOutcome observes every finished submission.
	OnOutcome func(s State, err error)
	NewID     func() string
	Now       func() time.Time
}

// Machine drives one voter's ballot through its lifecycle.
type Machine struct {
	mu         sync.Mutex
	cfg        Config
	identity   models.VoterIdentity
	state      State
	selections *Selections
	categories int
	lastErr    string
	receipt    *models.Receipt

	// pendingID is the idempotency key of the current ballot contents. It
	// survives failed attempts and is dropped on success or a changed choice.
	pendingID string
	retired   bool
}

func NewMachine(cfg Config) (*Machine, error) {
	if cfg.Identity.MatricNumber == "" {
		return nil, ErrIdentityRequired
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Machine{
		cfg:        cfg,
		identity:   cfg.Identity,
		state:      Selecting,
		selections: NewSelections(),
	}, nil
}

// SetCategoryCount records the size of the loaded catalog.
func (m *Machine) SetCategoryCount(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories = n
	m.promote()
}

func (m *Machine) CategoryCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.categories
}

// Select records a choice. Only possible before the voter finalizes.
func (m *Machine) Select(categoryID, nomineeName string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.categories == 0 {
		return ErrCatalogNotLoaded
	}
	if m.state != Selecting && m.state != ReadyToConfirm {
		return &TransitionError{From: m.state, To: Selecting}
	}

	if prev, ok := m.selections.Get(categoryID); !ok || prev != nomineeName {
		m.pendingID = ""
	}
	m.selections.Select(categoryID, nomineeName)
	m.promote()
	return nil
}

// Finalize opens the confirmation step.
func (m *Machine) Finalize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.promote()
	return m.moveTo(Confirming)
}

// Cancel leaves the confirmation step without touching the selections.
func (m *Machine) Cancel() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.moveTo(Selecting); err != nil {
		return err
	}
	m.lastErr = ""
	return nil
}

// Dismiss acknowledges a failed submission and returns to confirmation.
func (m *Machine) Dismiss() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.moveTo(Confirming); err != nil {
		return err
	}
	m.lastErr = ""
	return nil
}

// Submit sends the ballot. Allowed from Confirming, or from Failed which
// re-enters confirmation first. On failure the ballot stays intact for
// another attempt.
func (m *Machine) Submit(ctx context.Context, fp Fingerprinter) (models.Receipt, error) {
	m.mu.Lock()
	if m.state == Submitting {
		m.mu.Unlock()
		return models.Receipt{}, ErrSubmissionInFlight
	}
	if m.retired {
		m.mu.Unlock()
		return models.Receipt{}, ErrIdentityRequired
	}
	if m.state == Failed {
		m.state = Confirming
		m.lastErr = ""
	}
	if err := m.moveTo(Submitting); err != nil {
		m.mu.Unlock()
		return models.Receipt{}, err
	}
	if m.pendingID == "" {
		m.pendingID = m.cfg.NewID()
	}
	submissionID := m.pendingID
	identity := m.identity
	choices := m.selections.Choices()
	m.mu.Unlock()

	payload := models.SubmissionPayload{
		FullName:     identity.FullName,
		MatricNumber: identity.MatricNumber,
		Fingerprint:  fp.Generate(ctx),
		Choices:      choices,
		SubmissionID: submissionID,
	}

	message, err := retry.WithBackoff(ctx, m.cfg.Policy, func(ctx context.Context) (string, error) {
		return m.cfg.Submitter.Submit(ctx, payload)
	})
	if err != nil {
		m.fail(err)
		return models.Receipt{}, err
	}

	receipt := models.Receipt{
		SubmissionID: payload.SubmissionID,
		Fingerprint:  payload.Fingerprint,
		Message:      message,
		SubmittedAt:  m.cfg.Now(),
	}

	m.mu.Lock()
	m.state = Succeeded
	m.receipt = &receipt
	m.identity = models.VoterIdentity{}
	m.pendingID = ""
	m.mu.Unlock()

	slog.Info("ballot submitted",
		"submission_id", receipt.SubmissionID,
		"choices", len(choices),
	)

	if m.cfg.OnSucceeded != nil {
		if herr := m.cfg.OnSucceeded(ctx, receipt); herr != nil {
			slog.Error("post-submission cleanup failed", "submission_id", receipt.SubmissionID, "error", herr)
		}
	}
	if m.cfg.OnOutcome != nil {
		m.cfg.OnOutcome(Succeeded, nil)
	}

	return receipt, nil
}

// Retire ends the ballot when its session closes. The identity is dropped
// and later submissions fail with ErrIdentityRequired. A ballot that is
// being submitted cannot be retired.
func (m *Machine) Retire() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == Submitting {
		return ErrSubmissionInFlight
	}
	m.retired = true
	m.identity = models.VoterIdentity{}
	m.pendingID = ""
	return nil
}

func (m *Machine) fail(err error) {
	msg := UserMessage(err)

	m.mu.Lock()
	m.state = Failed
	m.lastErr = msg
	m.mu.Unlock()

	slog.Warn("ballot submission failed", "error", err, "retryable", retry.IsRetryable(err))

	if m.cfg.OnOutcome != nil {
		m.cfg.OnOutcome(Failed, err)
	}
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

func (m *Machine) Selections() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selections.Snapshot()
}

func (m *Machine) Receipt() (models.Receipt, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.receipt == nil {
		return models.Receipt{}, false
	}
	return *m.receipt, true
}

func (m *Machine) View() models.BallotView {
	m.mu.Lock()
	defer m.mu.Unlock()
	return models.BallotView{
		State:         string(m.state),
		Selections:    m.selections.Snapshot(),
		CategoryCount: m.categories,
		Complete:      m.categories > 0 && m.selections.IsComplete(m.categories),
		Error:         m.lastErr,
	}
}

// promote moves Selecting to ReadyToConfirm once every category has a choice.
// Caller holds mu.
func (m *Machine) promote() {
	if m.state == Selecting && m.categories > 0 && m.selections.IsComplete(m.categories) {
		m.state = ReadyToConfirm
	}
}

// Caller holds mu.
func (m *Machine) moveTo(next State) error {
	if !m.state.CanTransition(next) {
		return &TransitionError{From: m.state, To: next}
	}
	m.state = next
	return nil
}

// UserMessage extracts the voter-facing text of a submission failure.
func UserMessage(err error) string {
	var um interface{ UserMessage() string }
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	return GenericFailureMessage
}

package calculator

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/thevarp19/rams-tech-task/internal/form"
	"github.com/thevarp19/rams-tech-task/internal/notify"
	"github.com/thevarp19/rams-tech-task/internal/schedule"
	"github.com/thevarp19/rams-tech-task/internal/summary"
)

var ErrSessionNotFound = errors.New("session not found")

// State is everything one calculator instance owns: the form, the payment
// collection derived from it, and the pricing constants.
type State struct {
	Form          form.Parameters    `json:"form"`
	Payments      []schedule.Payment `json:"payments"`
	FullPrice     int64              `json:"fullPrice"`
	ApartmentArea float64            `json:"apartmentArea"`
}

type session struct {
	mu     sync.Mutex
	state  State
	toasts notify.Queue
}

// Options configure a Store. The reorder gate is injected here because which
// rows are draggable is a host decision, not an engine rule.
type Options struct {
	FullPrice     int64
	ApartmentArea float64
	DepositDate   time.Time
	ReorderGate   schedule.ReorderGate
	Now           func() time.Time
}

// Store holds calculator sessions. Each session's lock serializes its
// transitions: one mutation is fully applied before the next is evaluated,
// which is the only concurrency discipline the engine relies on.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*session

	gen  schedule.Generator
	gate schedule.ReorderGate

	fullPrice int64
	area      float64
	now       func() time.Time
}

// DefaultReorderGate reproduces the observed UI rule: the deposit row can
// neither be dragged nor be the drop target.
func DefaultReorderGate(payments []schedule.Payment, oldIndex, newIndex int) bool {
	return payments[oldIndex].Kind != schedule.KindDeposit &&
		payments[newIndex].Kind != schedule.KindDeposit
}

func NewStore(opts Options) *Store {
	gate := opts.ReorderGate
	if gate == nil {
		gate = DefaultReorderGate
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		sessions:  make(map[string]*session),
		gen:       schedule.Generator{DepositDate: opts.DepositDate},
		gate:      gate,
		fullPrice: opts.FullPrice,
		area:      opts.ApartmentArea,
		now:       now,
	}
}

// Create opens a session with the default form and a freshly generated
// schedule.
func (s *Store) Create() (string, State) {
	f := form.Defaults()
	st := State{
		Form:          f,
		Payments:      s.gen.Generate(f, s.fullPrice),
		FullPrice:     s.fullPrice,
		ApartmentArea: s.area,
	}

	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &session{state: st}
	s.mu.Unlock()
	return id, st
}

func (s *Store) Get(id string) (State, error) {
	sess, err := s.session(id)
	if err != nil {
		return State{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.state, nil
}

// FormPatch is a partial form update; nil fields are left untouched.
type FormPatch struct {
	PlanRate             *form.PlanRate `json:"paymentForm"`
	Deposit              *int64         `json:"deposit"`
	Prepayment           *int64         `json:"prepayment"`
	FirstInstallmentDate *time.Time     `json:"prepaymentDate"`
	InstallmentCount     *int           `json:"quantityPayments"`
}

// UpdateForm applies a patch, re-derives the prepayment when the plan rate
// changed, validates, and regenerates the whole collection. Any form change
// rebuilds the schedule wholesale; manual row edits do not survive it.
func (s *Store) UpdateForm(id string, patch FormPatch) (State, error) {
	sess, err := s.session(id)
	if err != nil {
		return State{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	f := sess.state.Form
	if patch.PlanRate != nil && *patch.PlanRate != f.PlanRate {
		f.PlanRate = *patch.PlanRate
		f.Prepayment = form.DerivePrepayment(s.fullPrice, f.PlanRate)
	}
	if patch.Deposit != nil {
		f.Deposit = *patch.Deposit
	}
	if patch.Prepayment != nil {
		f.Prepayment = *patch.Prepayment
	}
	if patch.FirstInstallmentDate != nil {
		f.FirstInstallmentDate = *patch.FirstInstallmentDate
	}
	if patch.InstallmentCount != nil {
		f.InstallmentCount = *patch.InstallmentCount
	}

	if err := form.Validate(f, s.fullPrice, s.now()); err != nil {
		return State{}, err
	}

	sess.state.Form = f
	sess.state.Payments = s.gen.Generate(f, s.fullPrice)
	sess.toasts.Push(notify.LevelSuccess, "Форма обновлена")
	return sess.state, nil
}

func (s *Store) EditAmount(id, paymentID string, amount int64) (State, schedule.Outcome, error) {
	return s.transition(id, func(st *State) schedule.Outcome {
		payments, out := schedule.EditAmount(st.Payments, st.FullPrice, paymentID, amount)
		st.Payments = payments
		return out
	})
}

func (s *Store) AddInstallment(id string) (State, schedule.Outcome, error) {
	return s.transition(id, func(st *State) schedule.Outcome {
		payments, out := schedule.AddInstallment(st.Payments, st.FullPrice, nil)
		st.Payments = payments
		if out.Applied {
			st.Form.InstallmentCount = schedule.InstallmentCount(payments)
		}
		return out
	})
}

func (s *Store) RemoveInstallment(id, paymentID string) (State, schedule.Outcome, error) {
	return s.transition(id, func(st *State) schedule.Outcome {
		payments, out := schedule.RemoveInstallment(st.Payments, st.FullPrice, paymentID)
		st.Payments = payments
		if out.Applied {
			st.Form.InstallmentCount = schedule.InstallmentCount(payments)
		}
		return out
	})
}

func (s *Store) Reorder(id string, oldIndex, newIndex int) (State, schedule.Outcome, error) {
	return s.transition(id, func(st *State) schedule.Outcome {
		payments, out := schedule.Reorder(st.Payments, oldIndex, newIndex, s.gate)
		st.Payments = payments
		return out
	})
}

// Summary projects the metrics for a session; rate is the optional NPV
// discount rate.
func (s *Store) Summary(id string, rate *decimal.Decimal) (summary.Metrics, decimal.Decimal, error) {
	sess, err := s.session(id)
	if err != nil {
		return summary.Metrics{}, decimal.Zero, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	m := summary.Project(sess.state.Payments, sess.state.FullPrice, sess.state.ApartmentArea)
	npv := summary.NPV(sess.state.Payments, sess.state.FullPrice, rate)
	return m, npv, nil
}

// Notifications drains the pending toast queue.
func (s *Store) Notifications(id string) ([]notify.Toast, error) {
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.toasts.Drain(), nil
}

func (s *Store) transition(id string, apply func(*State) schedule.Outcome) (State, schedule.Outcome, error) {
	sess, err := s.session(id)
	if err != nil {
		return State{}, schedule.Outcome{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	out := apply(&sess.state)
	level, msg := toastFor(out)
	sess.toasts.Push(level, msg)
	return sess.state, out, nil
}

func (s *Store) session(id string) (*session, error) {
	s.mu.RLock()
	sess, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// toastFor maps a transition outcome to the user-facing toast the frontend
// showed for it.
func toastFor(out schedule.Outcome) (notify.Level, string) {
	switch out.Code {
	case schedule.CodeAmountUpdated:
		return notify.LevelSuccess, "Сумма обновлена"
	case schedule.CodeOrderUpdated:
		return notify.LevelSuccess, "Порядок траншей обновлен"
	case schedule.CodeInstallmentAdded:
		return notify.LevelSuccess, "Новый транш добавлен"
	case schedule.CodeInstallmentRemoved:
		return notify.LevelSuccess, "Транш удален"
	case schedule.CodeCannotRemoveLast:
		return notify.LevelError, "Нельзя удалить все транши. Должен остаться хотя бы один."
	case schedule.CodeNotAnInstallment:
		return notify.LevelWarning, "Изменять можно только транши"
	case schedule.CodeReorderNotAllowed:
		return notify.LevelWarning, "Эту строку нельзя перемещать"
	default:
		return notify.LevelWarning, out.Message
	}
}

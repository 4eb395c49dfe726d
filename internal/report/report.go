// Package report computes the role-specific dashboard view from a
// snapshot of transactions and dropboxes.
package report

import (
	"time"

	"recycling/internal/core"
	"recycling/internal/identity"

	"github.com/shopspring/decimal"
)

const DefaultWindowMonths = 12

type Config struct {
	UnitRate     decimal.Decimal
	WindowMonths int
	// Location is where month boundaries are drawn.
	Location *time.Location
}

func DefaultConfig() Config {
	return Config{
		UnitRate:     core.DefaultUnitRate,
		WindowMonths: DefaultWindowMonths,
		Location:     time.UTC,
	}
}

// Outcome separates "nothing to show" from "computed, possibly zero".
type Outcome int

const (
	Empty Outcome = iota
	Populated
)

func (o Outcome) String() string {
	if o == Populated {
		return "populated"
	}
	return "empty"
}

// Reason explains an Empty outcome.
type Reason string

const (
	ReasonNone             Reason = ""
	ReasonNoTransactions   Reason = "no_transactions"
	ReasonNoDropbox        Reason = "no_dropbox"
	ReasonUnrecognizedRole Reason = "unrecognized_role"
)

// Line is a transaction with the money it earned.
type Line struct {
	core.Transaction
	Amount core.Money
}

// Earnings backs the participant and dropbox owner views.
type Earnings struct {
	// Dropbox is the owner's matched dropbox; nil for participants.
	Dropbox      *core.Dropbox
	Transactions []Line
	TotalBottles int64
	AmountEarned core.Money
}

// MatrixRow holds one dropbox's per-month totals. Totals has an entry for
// every month in the window.
type MatrixRow struct {
	DropboxID string
	Totals    map[core.MonthKey]int64
	Total     int64
}

// Values returns the totals in months order.
func (r MatrixRow) Values(months []core.MonthKey) []int64 {
	out := make([]int64, len(months))
	for i, m := range months {
		out[i] = r.Totals[m]
	}
	return out
}

// Matrix backs the recycler view. Rows are in order of first appearance
// in the transactions.
type Matrix struct {
	Months []core.MonthKey
	Rows   []MatrixRow
}

// PerDropbox indexes the rows by dropbox id.
func (m *Matrix) PerDropbox() map[string]map[core.MonthKey]int64 {
	out := make(map[string]map[core.MonthKey]int64, len(m.Rows))
	for _, r := range m.Rows {
		out[r.DropboxID] = r.Totals
	}
	return out
}

// View is the derived dashboard for one identity. Exactly one of Earnings
// and Matrix is set for a recognized role.
type View struct {
	Role     core.Role
	Outcome  Outcome
	Reason   Reason
	Earnings *Earnings
	Matrix   *Matrix
}

// Engine computes views. It holds only configuration and is safe for
// concurrent use.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.UnitRate.IsNegative() {
		cfg.UnitRate = def.UnitRate
	}
	if cfg.WindowMonths <= 0 {
		cfg.WindowMonths = def.WindowMonths
	}
	if cfg.Location == nil {
		cfg.Location = def.Location
	}
	return &Engine{cfg: cfg}
}

func (e *Engine) Config() Config {
	return e.cfg
}

// Aggregate derives the view for id. It is a pure function of its inputs;
// now only anchors the recycler month window.
func (e *Engine) Aggregate(id identity.Identity, txs []core.Transaction, boxes []core.Dropbox, now time.Time) View {
	switch id.Role {
	case core.RoleParticipant:
		return e.participant(id, txs)
	case core.RoleDropboxOwner:
		return e.dropboxOwner(id, txs, boxes)
	case core.RoleRecycler:
		return e.recycler(txs, now)
	default:
		return View{Role: id.Role, Outcome: Empty, Reason: ReasonUnrecognizedRole}
	}
}

func (e *Engine) participant(id identity.Identity, txs []core.Transaction) View {
	earn := e.earnings(txs, func(t core.Transaction) bool { return t.UserID == id.UserID() })
	return earningsView(core.RoleParticipant, earn)
}

func (e *Engine) dropboxOwner(id identity.Identity, txs []core.Transaction, boxes []core.Dropbox) View {
	box, ok := ownedDropbox(id.UserID(), boxes)
	if !ok {
		return View{Role: core.RoleDropboxOwner, Outcome: Empty, Reason: ReasonNoDropbox, Earnings: &Earnings{}}
	}
	earn := e.earnings(txs, func(t core.Transaction) bool { return t.DropboxID == box.DropboxID })
	earn.Dropbox = &box
	return earningsView(core.RoleDropboxOwner, earn)
}

func (e *Engine) recycler(txs []core.Transaction, now time.Time) View {
	months := core.TrailingMonths(now.In(e.cfg.Location), e.cfg.WindowMonths)
	inWindow := make(map[core.MonthKey]bool, len(months))
	for _, m := range months {
		inWindow[m] = true
	}

	m := &Matrix{Months: months, Rows: []MatrixRow{}}
	index := map[string]int{}
	for _, t := range txs {
		if t.DropboxID == "" {
			continue
		}
		i, seen := index[t.DropboxID]
		if !seen {
			totals := make(map[core.MonthKey]int64, len(months))
			for _, mk := range months {
				totals[mk] = 0
			}
			i = len(m.Rows)
			index[t.DropboxID] = i
			m.Rows = append(m.Rows, MatrixRow{DropboxID: t.DropboxID, Totals: totals})
		}
		key, ok := core.MonthKeyOf(t.Timestamp.In(e.cfg.Location))
		if !ok || !inWindow[key] {
			continue
		}
		n := t.Bottles.OrZero()
		m.Rows[i].Totals[key] += n
		m.Rows[i].Total += n
	}

	v := View{Role: core.RoleRecycler, Matrix: m, Outcome: Populated}
	if len(m.Rows) == 0 {
		v.Outcome, v.Reason = Empty, ReasonNoTransactions
	}
	return v
}

func (e *Engine) earnings(txs []core.Transaction, keep func(core.Transaction) bool) *Earnings {
	earn := &Earnings{Transactions: []Line{}}
	for _, t := range txs {
		if !keep(t) {
			continue
		}
		n := t.Bottles.OrZero()
		earn.Transactions = append(earn.Transactions, Line{Transaction: t, Amount: core.Earn(n, e.cfg.UnitRate)})
		earn.TotalBottles += n
	}
	earn.AmountEarned = core.Earn(earn.TotalBottles, e.cfg.UnitRate)
	return earn
}

func earningsView(role core.Role, earn *Earnings) View {
	v := View{Role: role, Outcome: Populated, Earnings: earn}
	if len(earn.Transactions) == 0 {
		v.Outcome, v.Reason = Empty, ReasonNoTransactions
	}
	return v
}

// ownedDropbox returns the first dropbox owned by userID.
func ownedDropbox(userID string, boxes []core.Dropbox) (core.Dropbox, bool) {
	for _, b := range boxes {
		if b.OwnerUserID == userID {
			return b, true
		}
	}
	return core.Dropbox{}, false
}

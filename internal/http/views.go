package http

import (
	"time"

	"recycling/internal/core"
	"recycling/internal/paging"
	"recycling/internal/report"
	"recycling/internal/session"
)

const dateLayout = "2006-01-02"

type userJSON struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
}

type dropboxJSON struct {
	DropboxID   string `json:"dropboxId"`
	OwnerUserID string `json:"ownerUserId"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type transactionJSON struct {
	TransactionID string `json:"transactionId"`
	// Date is empty when the timestamp could not be parsed.
	Date         string `json:"date"`
	DropboxID    string `json:"dropboxId"`
	UserID       string `json:"userId"`
	Bottles      int64  `json:"bottles"`
	BottlesValid bool   `json:"bottlesValid"`
	Amount       string `json:"amount"`
}

type earningsJSON struct {
	Dropbox          *dropboxJSON      `json:"dropbox,omitempty"`
	TotalBottles     int64             `json:"totalBottles"`
	AmountEarned     string            `json:"amountEarned"`
	AmountDisplay    string            `json:"amountDisplay"`
	TransactionCount int               `json:"transactionCount"`
	Transactions     []transactionJSON `json:"transactions"`
}

type matrixRowJSON struct {
	DropboxID string  `json:"dropboxId"`
	Values    []int64 `json:"values"`
	Total     int64   `json:"total"`
}

type matrixJSON struct {
	Months []string        `json:"months"`
	Labels []string        `json:"labels"`
	Rows   []matrixRowJSON `json:"rows"`
}

type pageJSON struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"pageSize"`
	TotalPages int  `json:"totalPages"`
	HasPrev    bool `json:"hasPrev"`
	HasNext    bool `json:"hasNext"`
}

type dashboardJSON struct {
	User     userJSON      `json:"user"`
	Role     string        `json:"role"`
	Outcome  string        `json:"outcome"`
	Reason   string        `json:"reason,omitempty"`
	Paging   pageJSON      `json:"paging"`
	Earnings *earningsJSON `json:"earnings,omitempty"`
	Matrix   *matrixJSON   `json:"matrix,omitempty"`
}

// renderDashboard shapes a view for the wire. Only the transaction list is
// paginated; the recycler matrix is returned whole.
func renderDashboard(st session.State, v report.View, pageSize int, loc *time.Location) dashboardJSON {
	u := st.Identity.User
	out := dashboardJSON{
		User:    userJSON{UserID: u.UserID, Name: u.Name, Email: u.Email, Phone: u.Phone, Role: u.RoleName},
		Role:    v.Role.String(),
		Outcome: v.Outcome.String(),
		Reason:  string(v.Reason),
	}

	page := st.Pager.Current()
	out.Paging = pageJSON{Page: page, PageSize: pageSize, HasPrev: page > 1}

	if e := v.Earnings; e != nil {
		lines := paging.Paginate(e.Transactions, page, pageSize)
		ej := &earningsJSON{
			TotalBottles:     e.TotalBottles,
			AmountEarned:     e.AmountEarned.String(),
			AmountDisplay:    e.AmountEarned.Display(),
			TransactionCount: len(e.Transactions),
			Transactions:     make([]transactionJSON, 0, len(lines)),
		}
		if e.Dropbox != nil {
			ej.Dropbox = toDropboxJSON(*e.Dropbox)
		}
		for _, l := range lines {
			ej.Transactions = append(ej.Transactions, toTransactionJSON(l, loc))
		}
		out.Earnings = ej
		out.Paging.TotalPages = paging.TotalPages(len(e.Transactions), pageSize)
		out.Paging.HasNext = page < out.Paging.TotalPages
	}

	if m := v.Matrix; m != nil {
		mj := &matrixJSON{
			Months: make([]string, 0, len(m.Months)),
			Labels: make([]string, 0, len(m.Months)),
			Rows:   make([]matrixRowJSON, 0, len(m.Rows)),
		}
		for _, k := range m.Months {
			mj.Months = append(mj.Months, string(k))
			mj.Labels = append(mj.Labels, k.Label())
		}
		for _, r := range m.Rows {
			mj.Rows = append(mj.Rows, matrixRowJSON{DropboxID: r.DropboxID, Values: r.Values(m.Months), Total: r.Total})
		}
		out.Matrix = mj
	}
	return out
}

func toDropboxJSON(d core.Dropbox) *dropboxJSON {
	return &dropboxJSON{
		DropboxID:   d.DropboxID,
		OwnerUserID: d.OwnerUserID,
		Location:    d.Location,
		Description: d.Description,
	}
}

func toTransactionJSON(l report.Line, loc *time.Location) transactionJSON {
	date := ""
	if l.HasTimestamp() {
		date = l.Timestamp.In(loc).Format(dateLayout)
	}
	return transactionJSON{
		TransactionID: l.TransactionID,
		Date:          date,
		DropboxID:     l.DropboxID,
		UserID:        l.UserID,
		Bottles:       l.Bottles.OrZero(),
		BottlesValid:  l.Bottles.Valid,
		Amount:        l.Amount.String(),
	}
}

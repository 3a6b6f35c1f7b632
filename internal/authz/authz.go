// Package authz is the permission resolver: pure decisions over plain actor and
// record values. It never touches the session layer or the database, so the same
// checks run identically in handlers and in tests.
package authz

import (
	"time"

	"go-dental-erp/internal/model"

	"github.com/google/uuid"
)

// Clinic timezone, day-granularity buckets are computed here
var clinicLoc *time.Location

func init() {
	var err error
	clinicLoc, err = time.LoadLocation("Asia/Ho_Chi_Minh")
	if err != nil {
		clinicLoc = time.FixedZone("ICT", 7*60*60)
	}
}

// Actor is the resolved identity making a request. Handlers build it once from
// the JWT claims and pass it down as a plain value.
type Actor struct {
	ID       uuid.UUID
	Email    string
	Name     string
	Role     model.Role
	ClinicID uuid.UUID
}

// IsAdmin reports whether the actor bypasses all scoping rules.
func (a Actor) IsAdmin() bool {
	return a.Role == model.RoleAdmin
}

// Action is a permission-checked operation on a business record.
type Action string

const (
	ActionView       Action = "view"
	ActionCreate     Action = "create"
	ActionUpdate     Action = "update"
	ActionDelete     Action = "delete"
	ActionTransition Action = "transition"
	// Quick actions stay available on locked records (e.g. printing, adding a note)
	ActionQuick Action = "quick"
)

// stateChanging reports whether the action mutates the record.
func (a Action) stateChanging() bool {
	return a == ActionCreate || a == ActionUpdate || a == ActionDelete || a == ActionTransition
}

// Record is the permission-relevant slice of a business record.
type Record struct {
	ClinicID uuid.UUID
	OwnerIDs []uuid.UUID // Employees with an ownership relation (sale, doctor, cashier)
	Date     time.Time   // The date the timeline bucket is derived from
	Locked   bool        // Terminal/locked status: checked-in, cancelled, fully paid...

	// For author-window records (treatment logs): who wrote it and when
	AuthorID  *uuid.UUID
	CreatedAt time.Time
}

// Decision is the outcome of a permission check. Reason is user-facing and only
// set when denied.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// TimelineBucket classifies a record date against "now" at day granularity.
type TimelineBucket int

const (
	BucketPast TimelineBucket = iota
	BucketToday
	BucketFuture
)

// Bucket returns the timeline bucket of date relative to now, both truncated to
// calendar days in the clinic timezone.
func Bucket(date, now time.Time) TimelineBucket {
	d := date.In(clinicLoc)
	n := now.In(clinicLoc)
	dy, dm, dd := d.Date()
	ny, nm, nd := n.Date()
	day := time.Date(dy, dm, dd, 0, 0, 0, 0, clinicLoc)
	today := time.Date(ny, nm, nd, 0, 0, 0, 0, clinicLoc)
	switch {
	case day.Before(today):
		return BucketPast
	case day.After(today):
		return BucketFuture
	default:
		return BucketToday
	}
}

// CanPerform decides whether actor may run action against rec at time now.
// Rule order matters: admin bypass, clinic isolation, timeline, lock state.
func CanPerform(actor Actor, action Action, rec Record, now time.Time) Decision {
	if actor.ID == uuid.Nil {
		return deny("Chưa đăng nhập")
	}
	if actor.IsAdmin() {
		return allow()
	}

	// Cross-clinic isolation beats everything else for non-admins
	if rec.ClinicID != uuid.Nil && rec.ClinicID != actor.ClinicID {
		return deny("Không có quyền thao tác trên chi nhánh khác")
	}

	if action.stateChanging() {
		if Bucket(rec.Date, now) == BucketPast {
			return deny("Không thể thay đổi dữ liệu của ngày đã qua")
		}
		if rec.Locked {
			return deny("Bản ghi đã khóa, chỉ còn thao tác nhanh")
		}
	}

	return allow()
}

// EditWindow is how long the original author may edit an author-window record.
const EditWindow = 48 * time.Hour

// CanEditAuthored gates edits to author-window records (treatment logs, sales
// activity notes): only the original author, only within EditWindow of creation.
// Admins bypass both constraints.
func CanEditAuthored(actor Actor, rec Record, now time.Time) Decision {
	if actor.ID == uuid.Nil {
		return deny("Chưa đăng nhập")
	}
	if actor.IsAdmin() {
		return allow()
	}
	if rec.ClinicID != uuid.Nil && rec.ClinicID != actor.ClinicID {
		return deny("Không có quyền thao tác trên chi nhánh khác")
	}
	if rec.AuthorID == nil || *rec.AuthorID != actor.ID {
		return deny("Chỉ người tạo mới được sửa bản ghi này")
	}
	if now.Sub(rec.CreatedAt) > EditWindow {
		return deny("Đã quá thời hạn chỉnh sửa")
	}
	return allow()
}

// Owns reports whether the actor has an ownership relation to the record.
func Owns(actor Actor, rec Record) bool {
	for _, id := range rec.OwnerIDs {
		if id == actor.ID {
			return true
		}
	}
	return false
}

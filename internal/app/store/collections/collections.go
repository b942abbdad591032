// Package collections names every in-memory collection the console uses and
// hands out typed handles to them.
package collections

import (
	"github.com/ohenegyan12/church-management/internal/app/store/memstore"
	"github.com/ohenegyan12/church-management/internal/domain/models"
)

// Collection names. Seed keys use the same names.
const (
	Settings           = "settings"
	Conferences        = "conferences"
	Districts          = "districts"
	Societies          = "societies"
	Clergy             = "clergy"
	LayOfficers        = "lay_officers"
	Staff              = "staff"
	Employees          = "employees"
	LeaveRequests      = "leave_requests"
	FinanceCollections = "collections"
	Payments           = "payments"
	FinanceReports     = "finance_reports"
	Reports            = "reports"
	Events             = "events"
	Memos              = "memos"
	Documents          = "documents"
	SMSTemplates       = "sms_templates"
	SMSMessages        = "sms_messages"
	Notifications      = "notifications"
	Activities         = "activities"
	Users              = "users"
	Roles              = "roles"
)

// Set bundles typed handles for all collections in one DB.
type Set struct {
	DB *memstore.DB

	Settings       *memstore.Collection[models.Settings]
	Conferences    *memstore.Collection[models.Conference]
	Districts      *memstore.Collection[models.District]
	Societies      *memstore.Collection[models.Society]
	Clergy         *memstore.Collection[models.Clergy]
	LayOfficers    *memstore.Collection[models.LayOfficer]
	Staff          *memstore.Collection[models.Staff]
	Employees      *memstore.Collection[models.Employee]
	LeaveRequests  *memstore.Collection[models.LeaveRequest]
	Collections    *memstore.Collection[models.Collection]
	Payments       *memstore.Collection[models.Payment]
	FinanceReports *memstore.Collection[models.Report]
	Reports        *memstore.Collection[models.Report]
	Events         *memstore.Collection[models.Event]
	Memos          *memstore.Collection[models.Memo]
	Documents      *memstore.Collection[models.Document]
	SMSTemplates   *memstore.Collection[models.SMSTemplate]
	SMSMessages    *memstore.Collection[models.SMSMessage]
	Notifications  *memstore.Collection[models.Notification]
	Activities     *memstore.Collection[models.Activity]
	Users          *memstore.Collection[models.User]
	Roles          *memstore.Collection[models.Role]
}

// Open registers every collection on db and returns the handles.
func Open(db *memstore.DB) *Set {
	return &Set{
		DB:             db,
		Settings:       memstore.Register[models.Settings](db, Settings),
		Conferences:    memstore.Register[models.Conference](db, Conferences),
		Districts:      memstore.Register[models.District](db, Districts),
		Societies:      memstore.Register[models.Society](db, Societies),
		Clergy:         memstore.Register[models.Clergy](db, Clergy),
		LayOfficers:    memstore.Register[models.LayOfficer](db, LayOfficers),
		Staff:          memstore.Register[models.Staff](db, Staff),
		Employees:      memstore.Register[models.Employee](db, Employees),
		LeaveRequests:  memstore.Register[models.LeaveRequest](db, LeaveRequests),
		Collections:    memstore.Register[models.Collection](db, FinanceCollections),
		Payments:       memstore.Register[models.Payment](db, Payments),
		FinanceReports: memstore.Register[models.Report](db, FinanceReports),
		Reports:        memstore.Register[models.Report](db, Reports),
		Events:         memstore.Register[models.Event](db, Events),
		Memos:          memstore.Register[models.Memo](db, Memos),
		Documents:      memstore.Register[models.Document](db, Documents),
		SMSTemplates:   memstore.Register[models.SMSTemplate](db, SMSTemplates),
		SMSMessages:    memstore.Register[models.SMSMessage](db, SMSMessages),
		Notifications:  memstore.Register[models.Notification](db, Notifications),
		Activities:     memstore.Register[models.Activity](db, Activities),
		Users:          memstore.Register[models.User](db, Users),
		Roles:          memstore.Register[models.Role](db, Roles),
	}
}

package constants

import (
	"fmt"
	"sort"
)

// TenantTable is a church-scoped table and the tables its rows reference.
// Every tenant table carries its own church column, so a tenant wipe is a
// list of plain `DELETE FROM <name> WHERE <church_column> = ?` statements.
type TenantTable struct {
	Name         string
	ChurchColumn string
	DependsOn    []string
}

/* ===== Tenant tables (FK parents listed in DependsOn) ===== */

var TenantTables = []TenantTable{
	{Name: "members", ChurchColumn: "member_church_id"},

	{Name: "ministries", ChurchColumn: "ministry_church_id", DependsOn: []string{"members"}},
	{Name: "ministry_volunteers", ChurchColumn: "volunteer_church_id", DependsOn: []string{"ministries", "members"}},
	{Name: "schedules", ChurchColumn: "schedule_church_id", DependsOn: []string{"ministries"}},
	{Name: "schedule_assignments", ChurchColumn: "schedule_assignment_church_id", DependsOn: []string{"schedules", "members"}},
	{Name: "ministry_demands", ChurchColumn: "demand_church_id", DependsOn: []string{"ministries", "members"}},

	{Name: "events", ChurchColumn: "event_church_id"},
	{Name: "devotionals", ChurchColumn: "devotional_church_id"},
	{Name: "schools", ChurchColumn: "school_church_id"},
	{Name: "school_enrollments", ChurchColumn: "enrollment_church_id", DependsOn: []string{"schools", "members"}},

	{Name: "trilhas", ChurchColumn: "trilha_church_id"},
	{Name: "etapas", ChurchColumn: "etapa_church_id", DependsOn: []string{"trilhas"}},
	{Name: "passos", ChurchColumn: "passo_church_id", DependsOn: []string{"etapas"}},
	{Name: "quiz_questions", ChurchColumn: "quiz_question_church_id", DependsOn: []string{"passos"}},
	{Name: "passo_progress", ChurchColumn: "passo_progress_church_id", DependsOn: []string{"passos"}},
	{Name: "quiz_attempts", ChurchColumn: "quiz_attempt_church_id", DependsOn: []string{"passos"}},

	{Name: "finance_categories", ChurchColumn: "category_church_id"},
	{Name: "finance_transactions", ChurchColumn: "transaction_church_id", DependsOn: []string{"finance_categories", "members"}},
	{Name: "finance_budgets", ChurchColumn: "budget_church_id", DependsOn: []string{"finance_categories"}},

	{Name: "kids", ChurchColumn: "kid_church_id"},
	{Name: "kid_checkins", ChurchColumn: "kid_checkin_church_id", DependsOn: []string{"kids", "members"}},

	{Name: "notifications", ChurchColumn: "notification_church_id"},
	{Name: "user_notifications", ChurchColumn: "user_notification_church_id", DependsOn: []string{"notifications"}},

	{Name: "whatsapp_sessions", ChurchColumn: "wa_session_church_id"},
	{Name: "whatsapp_messages", ChurchColumn: "wa_message_church_id"},

	{Name: "pastor_documents", ChurchColumn: "document_church_id"},

	{Name: "plan_change_requests", ChurchColumn: "plan_change_church_id"},
	{Name: "subscription_payments", ChurchColumn: "subscription_payment_church_id"},
	{Name: "payment_gateway_events", ChurchColumn: "gateway_event_church_id", DependsOn: []string{"subscription_payments"}},
}

// BillingTables keep the payment history; a tenant reset leaves them alone.
var BillingTables = map[string]bool{
	"plan_change_requests":   true,
	"subscription_payments":  true,
	"payment_gateway_events": true,
}

// DeletionOrder returns the tables so that every table comes before any
// table it depends on. Ties keep declaration order, so the result is stable.
func DeletionOrder(tables []TenantTable) ([]TenantTable, error) {
	index := make(map[string]int, len(tables))
	for i, t := range tables {
		if _, dup := index[t.Name]; dup {
			return nil, fmt.Errorf("duplicate tenant table %q", t.Name)
		}
		index[t.Name] = i
	}

	// dependents[p] = tables referencing p; they must be deleted before p.
	dependents := make(map[string][]string, len(tables))
	pending := make(map[string]int, len(tables))
	for _, t := range tables {
		for _, dep := range t.DependsOn {
			if _, ok := index[dep]; !ok {
				return nil, fmt.Errorf("table %q depends on unknown table %q", t.Name, dep)
			}
			dependents[dep] = append(dependents[dep], t.Name)
			pending[dep]++
		}
	}

	ready := make([]string, 0, len(tables))
	for _, t := range tables {
		if pending[t.Name] == 0 {
			ready = append(ready, t.Name)
		}
	}

	out := make([]TenantTable, 0, len(tables))
	for len(ready) > 0 {
		sort.SliceStable(ready, func(i, j int) bool { return index[ready[i]] < index[ready[j]] })
		name := ready[0]
		ready = ready[1:]

		t := tables[index[name]]
		out = append(out, t)
		for _, dep := range t.DependsOn {
			pending[dep]--
			if pending[dep] == 0 {
				ready = append(ready, dep)
			}
		}
	}

	if len(out) != len(tables) {
		return nil, fmt.Errorf("tenant tables contain a dependency cycle")
	}
	return out, nil
}

var tenantDeletionOrder []TenantTable

func init() {
	order, err := DeletionOrder(TenantTables)
	if err != nil {
		panic(err)
	}
	tenantDeletionOrder = order
}

// TenantDeletionOrder is DeletionOrder(TenantTables), computed once.
func TenantDeletionOrder() []TenantTable {
	return append([]TenantTable(nil), tenantDeletionOrder...)
}

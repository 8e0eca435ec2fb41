package services

import (
	"github.com/shopspring/decimal"

	"moolah/internal/models"
	"moolah/internal/pagination"
	"moolah/internal/patch"
)

// CreateCategoryParams holds the fields accepted when creating a category.
type CreateCategoryParams struct {
	Name      string
	Type      models.CategoryType
	Colour    *string
	ParentID  *string
	SortOrder int
	Status    models.EntityStatus
}

// CategoryPatch holds the partial-update payload for a category. Absent
// fields are untouched; explicit nulls clear nullable fields.
type CategoryPatch struct {
	Name      patch.Field[string]              `json:"name"`
	Type      patch.Field[models.CategoryType] `json:"type"`
	Colour    patch.Field[string]              `json:"colour"`
	ParentID  patch.Field[string]              `json:"parent_id"`
	SortOrder patch.Field[int]                 `json:"sort_order"`
	Status    patch.Field[models.EntityStatus] `json:"status"`
}

// CategoryFilter holds optional filter parameters for listing categories.
type CategoryFilter struct {
	Status   *models.EntityStatus
	ParentID *string
	TopLevel bool
}

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	Create(userID string, params CreateCategoryParams) (*models.Category, error)
	List(userID string, filter CategoryFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Category], error)
	Tree(userID string) ([]*models.Category, error)
	GetByID(userID, categoryID string) (*models.Category, error)
	Update(userID, categoryID string, p CategoryPatch) (*models.Category, error)
	Delete(userID, categoryID string, cascade bool) error
}

// CreateTransactionParams holds the fields accepted when creating a transaction.
type CreateTransactionParams struct {
	Type        models.TransactionType
	Amount      decimal.Decimal
	Date        string
	Description string
	CategoryID  *string
}

// TransactionPatch holds the partial-update payload for a transaction.
type TransactionPatch struct {
	Type        patch.Field[models.TransactionType] `json:"type"`
	Amount      patch.Field[decimal.Decimal]        `json:"amount"`
	Date        patch.Field[string]                 `json:"date"`
	Description patch.Field[string]                 `json:"description"`
	CategoryID  patch.Field[string]                 `json:"category_id"`
}

// TransactionFilter holds optional filter parameters for listing
// transactions. Filters compose conjunctively.
type TransactionFilter struct {
	Type       *models.TransactionType
	CategoryID *string
	StartDate  *string
	EndDate    *string
	Search     string
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	Create(userID string, params CreateTransactionParams) (*models.Transaction, error)
	List(userID string, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Transaction], error)
	GetByID(userID, transactionID string) (*models.Transaction, error)
	Update(userID, transactionID string, p TransactionPatch) (*models.Transaction, error)
	Delete(userID, transactionID string) error
}

// CreateBudgetParams holds the fields accepted when creating a budget.
type CreateBudgetParams struct {
	Name        string
	Amount      decimal.Decimal
	Currency    string
	CategoryID  string
	PeriodStart *string
	PeriodEnd   *string
}

// BudgetPatch holds the partial-update payload for a budget.
type BudgetPatch struct {
	Name        patch.Field[string]          `json:"name"`
	Amount      patch.Field[decimal.Decimal] `json:"amount"`
	Currency    patch.Field[string]          `json:"currency"`
	CategoryID  patch.Field[string]          `json:"category_id"`
	PeriodStart patch.Field[string]          `json:"period_start"`
	PeriodEnd   patch.Field[string]          `json:"period_end"`
}

// BudgetProgress contains spending vs budget data.
type BudgetProgress struct {
	BudgetID   string          `json:"budget_id"`
	Budgeted   decimal.Decimal `json:"budgeted"`
	Spent      decimal.Decimal `json:"spent"`
	Remaining  decimal.Decimal `json:"remaining"`
	Percentage float64         `json:"percentage"`
}

// BudgetServicer defines the contract for budget-related business logic.
type BudgetServicer interface {
	Create(userID string, params CreateBudgetParams) (*models.Budget, error)
	List(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Budget], error)
	GetByID(userID, budgetID string) (*models.Budget, error)
	Update(userID, budgetID string, p BudgetPatch) (*models.Budget, error)
	Delete(userID, budgetID string) error
	Progress(userID, budgetID string) (*BudgetProgress, error)
}

// CreateGoalParams holds the fields accepted when creating a goal.
type CreateGoalParams struct {
	Title         string
	TargetAmount  decimal.Decimal
	CurrentAmount decimal.Decimal
	Currency      string
	CategoryID    *string
	DueDate       *string
	Notes         string
}

// GoalPatch holds the partial-update payload for a goal. Status only
// accepts active/archived; completed is derived and never written.
type GoalPatch struct {
	Title         patch.Field[string]            `json:"title"`
	TargetAmount  patch.Field[decimal.Decimal]   `json:"target_amount"`
	CurrentAmount patch.Field[decimal.Decimal]   `json:"current_amount"`
	Currency      patch.Field[string]            `json:"currency"`
	CategoryID    patch.Field[string]            `json:"category_id"`
	DueDate       patch.Field[string]            `json:"due_date"`
	Notes         patch.Field[string]            `json:"notes"`
	Status        patch.Field[models.GoalStatus] `json:"status"`
}

// GoalFilter holds optional filter parameters for listing goals. Status is
// matched against the derived status, so "completed" selects goals whose
// amounts satisfy the completion rule.
type GoalFilter struct {
	Status     *models.GoalStatus
	CategoryID *string
	DueFrom    *string
	DueTo      *string
}

// GoalServicer defines the contract for goal-related business logic.
type GoalServicer interface {
	Create(userID string, params CreateGoalParams) (*models.Goal, error)
	List(userID string, filter GoalFilter, page pagination.PageRequest) (*pagination.PageResponse[models.Goal], error)
	GetByID(userID, goalID string) (*models.Goal, error)
	Update(userID, goalID string, p GoalPatch) (*models.Goal, error)
	Delete(userID, goalID string) error
}

// SelfPatch holds the whitelisted self-service profile fields. Roles and
// status are deliberately absent: those require admin privilege.
type SelfPatch struct {
	DisplayName patch.Field[string] `json:"display_name"`
	PhotoURL    patch.Field[string] `json:"photo_url"`
	Locale      patch.Field[string] `json:"locale"`
	Timezone    patch.Field[string] `json:"timezone"`
	Currency    patch.Field[string] `json:"currency"`
}

// AdminUserPatch extends the self fields with the admin-managed ones.
type AdminUserPatch struct {
	SelfPatch
	Roles  patch.Field[[]string]          `json:"roles"`
	Status patch.Field[models.UserStatus] `json:"status"`
}

// UserServicer defines the contract for user-profile business logic.
type UserServicer interface {
	GetSelf(uid string) (*models.User, error)
	UpsertSelf(uid, email string, p SelfPatch) (*models.User, error)
	UpdateSelf(uid string, p SelfPatch) (*models.User, error)
	AdminGet(uid string) (*models.User, error)
	AdminUpdate(uid string, p AdminUserPatch) (*models.User, error)
	AdminDelete(uid string, hard bool) error
}

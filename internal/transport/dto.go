package transport

type CreateCourseRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Description string   `json:"description" validate:"required"`
	Price       string   `json:"price"       validate:"required,numeric"`
	Duration    string   `json:"duration"    validate:"required"`
	Difficulty  string   `json:"difficulty"  validate:"required"`
	ImageURL    *string  `json:"imageUrl"`
	Tags        []string `json:"tags"        validate:"omitempty,dive,required"`
	Features    []string `json:"features"    validate:"omitempty,dive,required"`
	IsActive    *bool    `json:"isActive"`
}

type PatchCourseRequest struct {
	Title       *string            `json:"title"       validate:"omitempty,min=1"`
	Description *string            `json:"description" validate:"omitempty,min=1"`
	Price       *string            `json:"price"       validate:"omitempty,numeric"`
	Duration    *string            `json:"duration"    validate:"omitempty,min=1"`
	Difficulty  *string            `json:"difficulty"  validate:"omitempty,min=1"`
	ImageURL    Nullable[string]   `json:"imageUrl"`
	Tags        Nullable[[]string] `json:"tags"`
	Features    Nullable[[]string] `json:"features"`
	IsActive    *bool              `json:"isActive"`
}

type AddToCartRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
	CourseID  uint   `json:"courseId"  validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type PaymentIntentRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}

type CompleteOrderRequest struct {
	SessionID       string `json:"sessionId"       validate:"required"`
	PaymentIntentID string `json:"paymentIntentId" validate:"required"`
}

type GeneratePaymentRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId"   validate:"required"`
	UTRNumber string `json:"utrNumber" validate:"required"`
	SessionID string `json:"sessionId" validate:"required"`
}

package validator

import apperrors "github.com/SAP-F-2025/quiz-engine/internal/errors"

// Re-export shared validation error types for package consumers.
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

var NewValidationError = apperrors.NewValidationError
var ToValidationErrors = apperrors.ToValidationErrors

package auth

import (
	"context"

	"github.com/hearthhq/hearth/internal/models"
)

// Authenticator is the identity-provider boundary: sign-in resolves to a
// stable user id and email that gate everything else. The credential format
// depends on the implementation (password today; OAuth could slot in later
// without touching the service layer).
type Authenticator interface {
	// Register creates a new account and returns the created user.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate verifies the credentials and returns the user if valid.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks whether the credential meets the
	// implementation's requirements before any account is created.
	ValidateCredential(credential string) error
}

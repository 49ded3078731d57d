package auth

import (
	"context"

	"dealer/core"

	"github.com/fox-one/pkg/logger"
)

type authorizer struct {
	owner     string
	admins    map[string]bool
	delegates core.IDelegateStore
}

// New authorizer with a fixed owner and admin list, delegations come from store
func New(owner string, admins []string, delegates core.IDelegateStore) core.IAuthorizer {
	a := &authorizer{
		owner:     owner,
		admins:    make(map[string]bool, len(admins)),
		delegates: delegates,
	}

	for _, admin := range admins {
		a.admins[admin] = true
	}

	return a
}

func (a *authorizer) IsOwner(ctx context.Context, caller string) bool {
	return caller != "" && caller == a.owner
}

func (a *authorizer) IsPrivileged(ctx context.Context, caller string) bool {
	return a.admins[caller]
}

func (a *authorizer) IsHolderOrDelegate(ctx context.Context, caller, account string) bool {
	if caller == "" || account == "" {
		return false
	}

	if caller == account {
		return true
	}

	ok, err := a.delegates.Has(ctx, account, caller)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("delegates.Has", account, caller)
		return false
	}

	return ok
}

package auth

import (
	"context"

	"dealer/core"

	"github.com/fox-one/pkg/logger"
)

type delegateService struct {
	store core.IDelegateStore
}

// NewDelegateService accounts manage their own delegates
func NewDelegateService(store core.IDelegateStore) core.IDelegateService {
	return &delegateService{store: store}
}

func (s *delegateService) AddDelegate(ctx context.Context, caller, delegate string) error {
	if caller == "" || delegate == "" || caller == delegate {
		return core.ErrNotAuthorized
	}

	if err := s.store.Add(ctx, caller, delegate); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("delegates.Add")
		return err
	}

	logger.FromContext(ctx).Infof("delegate added: %s -> %s", caller, delegate)
	return nil
}

func (s *delegateService) RevokeDelegate(ctx context.Context, caller, delegate string) error {
	if caller == "" || delegate == "" {
		return core.ErrNotAuthorized
	}

	if err := s.store.Revoke(ctx, caller, delegate); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("delegates.Revoke")
		return err
	}

	logger.FromContext(ctx).Infof("delegate revoked: %s -> %s", caller, delegate)
	return nil
}

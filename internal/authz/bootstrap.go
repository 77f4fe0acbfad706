package authz

import (
	"fmt"

	"github.com/prostore-go/internal/constants"
)

// BuiltinPolicies 预置角色策略矩阵。
// 角色集合封闭：admin 拥有全部管理端资源，user 无管理端权限。
func BuiltinPolicies() []Policy {
	return []Policy{
		{Subject: SubjectForRole(constants.RoleAdmin), Object: "/admin/*", Action: "*"},
	}
}

// BootstrapBuiltinRoles 写入预置策略（已存在时跳过）
func (s *Service) BootstrapBuiltinRoles() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	for _, policy := range BuiltinPolicies() {
		exists, err := s.enforcer.HasPolicy(policy.Subject, policy.Object, policy.Action)
		if err != nil {
			return fmt.Errorf("check builtin policy failed: %w", err)
		}
		if exists {
			continue
		}
		if _, err := s.enforcer.AddPolicy(policy.Subject, policy.Object, policy.Action); err != nil {
			return fmt.Errorf("add builtin policy failed: %w", err)
		}
	}
	return s.enforcer.SavePolicy()
}

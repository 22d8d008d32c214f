package pdp

import (
	"context"
	"fmt"
	"sync"

	"github.com/permitio/docgate"
)

// Compile-time interface check.
var _ docgate.PolicyClient = (*Memory)(nil)

// Memory is an in-process PolicyClient for tests and local development.
// It models the minimum the remote service does: named roles granting
// actions, and per-resource role assignments. It never reproduces the real
// policy engine.
type Memory struct {
	mu          sync.RWMutex
	roles       map[string]map[docgate.Action]struct{}
	assignments map[string]map[string][]string // subjectID -> resource string -> roles
	failErr     error
	checkCalls  int
	assignCalls []docgate.RoleAssignment
}

// NewMemory creates an empty in-memory policy client.
func NewMemory() *Memory {
	return &Memory{
		roles:       make(map[string]map[docgate.Action]struct{}),
		assignments: make(map[string]map[string][]string),
	}
}

// DefineRole declares a role and the actions it grants. Mirrors the role
// definitions that live in the remote policy configuration.
func (m *Memory) DefineRole(name string, actions ...docgate.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()
	grants := make(map[docgate.Action]struct{}, len(actions))
	for _, a := range actions {
		grants[a] = struct{}{}
	}
	m.roles[name] = grants
}

// Grant assigns a role to a subject on a resource without the validation
// AssignRole performs. Test setup helper.
func (m *Memory) Grant(subjectID, role string, resource docgate.Resource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.grantLocked(subjectID, role, resource)
}

func (m *Memory) grantLocked(subjectID, role string, resource docgate.Resource) {
	byResource, ok := m.assignments[subjectID]
	if !ok {
		byResource = make(map[string][]string)
		m.assignments[subjectID] = byResource
	}
	key := resource.String()
	byResource[key] = append(byResource[key], role)
}

// FailWith makes every subsequent call return err, simulating an
// unreachable decision service. Pass nil to restore normal behavior.
func (m *Memory) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
}

// CheckCalls returns the number of Check calls received.
func (m *Memory) CheckCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.checkCalls
}

// Assignments returns a copy of all assignments accepted via AssignRole.
func (m *Memory) Assignments() []docgate.RoleAssignment {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]docgate.RoleAssignment, len(m.assignCalls))
	copy(out, m.assignCalls)
	return out
}

// Check implements docgate.PolicyClient.
func (m *Memory) Check(_ context.Context, req *docgate.CheckRequest) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkCalls++

	if m.failErr != nil {
		return false, m.failErr
	}

	byResource, ok := m.assignments[req.Subject.ID]
	if !ok {
		return false, nil
	}
	for _, role := range byResource[req.Resource.String()] {
		grants, ok := m.roles[role]
		if !ok {
			continue
		}
		if _, ok := grants[req.Action]; ok {
			return true, nil
		}
	}
	return false, nil
}

// AssignRole implements docgate.PolicyClient. Like the remote service, it
// rejects role names that are not defined; it performs no authorization.
func (m *Memory) AssignRole(_ context.Context, a *docgate.RoleAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failErr != nil {
		return m.failErr
	}
	if _, ok := m.roles[a.Role]; !ok {
		return fmt.Errorf("%w: role %q is not defined", docgate.ErrAssignmentRejected, a.Role)
	}

	m.grantLocked(a.UserID, a.Role, a.Resource)
	m.assignCalls = append(m.assignCalls, *a)
	return nil
}

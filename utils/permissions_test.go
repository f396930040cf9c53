package utils

import "testing"

func TestMatchesPermission(t *testing.T) {
	tests := []struct {
		name         string
		userPerm     string
		requiredPerm string
		expected     bool
	}{
		// Exact matches
		{"exact match same permission", "work:create", "work:create", true},
		{"exact match different action", "work:create", "work:read", false},
		{"exact match different resource", "work:create", "equipment:create", false},

		// Full wildcard tests
		{"full wildcard *:*", "*:*", "work:create", true},
		{"full wildcard *", "*", "anything:goes", true},
		{"full wildcard matches delete", "*:*", "equipment:assign", true},

		// Resource wildcard tests
		{"resource wildcard matches create", "work:*", "work:create", true},
		{"resource wildcard matches update", "work:*", "work:update", true},
		{"resource wildcard doesn't match other resource", "work:*", "finance:create", false},

		// Action wildcard tests
		{"action wildcard matches work", "*:read", "work:read", true},
		{"action wildcard matches finance", "*:read", "finance:read", true},
		{"action wildcard doesn't match create", "*:read", "work:create", false},

		// Edge cases
		{"empty required permission", "work:create", "", false},
		{"empty user permission", "", "work:create", false},
		{"both empty", "", "", true},
		{"single part permission", "admin", "admin", true},
		{"single part vs two-part", "admin", "admin:read", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MatchesPermission(tt.userPerm, tt.requiredPerm)
			if result != tt.expected {
				t.Errorf("MatchesPermission(%q, %q) = %v, expected %v",
					tt.userPerm, tt.requiredPerm, result, tt.expected)
			}
		})
	}
}

func TestHasPermission(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		required string
		expected bool
	}{
		{"admin can do anything", "admin", "work:delete", true},
		{"admin can read dashboard", "admin", "dashboard:read", true},
		{"site agent can create works", "site_agent", "work:create", true},
		{"site agent can read anything", "site_agent", "dashboard:read", true},
		{"site agent cannot delete works", "site_agent", "work:delete", false},
		{"engineer can record site visits", "engineer", "site_visit:create", true},
		{"engineer cannot create works", "engineer", "work:create", false},
		{"foreman can log labour", "foreman", "labour:create", true},
		{"foreman cannot upload files", "foreman", "file:upload", false},
		{"mason is read only", "mason", "labour:create", false},
		{"mason can read", "mason", "work:read", true},
		{"client can read own works", "client", "work:read", true},
		{"client cannot read labour", "client", "labour:read", false},
		{"client cannot assign equipment", "client", "equipment:assign", false},
		{"unknown role has nothing", "ghost", "work:read", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := HasPermission(tt.role, tt.required)
			if result != tt.expected {
				t.Errorf("HasPermission(%q, %q) = %v, expected %v",
					tt.role, tt.required, result, tt.expected)
			}
		})
	}
}

func BenchmarkMatchesPermission_ExactMatch(b *testing.B) {
	for i := 0; i < b.N; i++ {
		MatchesPermission("work:create", "work:create")
	}
}

func BenchmarkMatchesPermission_WildcardMatch(b *testing.B) {
	for i := 0; i < b.N; i++ {
		MatchesPermission("*:*", "work:create")
	}
}

func BenchmarkMatchesPermission_ActionWildcard(b *testing.B) {
	for i := 0; i < b.N; i++ {
		MatchesPermission("*:read", "work:read")
	}
}

func BenchmarkHasPermission_SiteAgent(b *testing.B) {
	for i := 0; i < b.N; i++ {
		HasPermission("site_agent", "equipment:assign")
	}
}

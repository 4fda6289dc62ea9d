// ABOUTME: StaticRuleSet is the always-applied, category-grouped rule list
// ABOUTME: Categories keep the order they were declared in the source file
package models

// RuleCategory is one named group of static rules
type RuleCategory struct {
	Name  string   `json:"name" yaml:"name"`
	Rules []string `json:"rules" yaml:"rules"`
}

// StaticRuleSet is read-only after load; categories are ordered
type StaticRuleSet struct {
	Categories []RuleCategory `json:"categories"`
}

// Names returns category names in declaration order
func (s StaticRuleSet) Names() []string {
	names := make([]string, 0, len(s.Categories))
	for _, c := range s.Categories {
		names = append(names, c.Name)
	}
	return names
}

// Get returns the rules for a category, or nil
func (s StaticRuleSet) Get(name string) []string {
	for _, c := range s.Categories {
		if c.Name == name {
			return c.Rules
		}
	}
	return nil
}

// IsEmpty reports whether the set has no categories
func (s StaticRuleSet) IsEmpty() bool {
	return len(s.Categories) == 0
}

/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package ops

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
)

// CommandGroup represents the operational classification of commands
type CommandGroup string

const (
	GroupNeat     CommandGroup = "neat"     // repo hygiene audits (check)
	GroupWorkflow CommandGroup = "workflow" // CI and publishing helpers (site)
	GroupSupport  CommandGroup = "support"  // envinfo, help, version info
)

// CommandCategory refines a group into the kind of work a command performs
type CommandCategory string

const (
	CategoryValidation  CommandCategory = "validation"
	CategoryGeneration  CommandCategory = "generation"
	CategoryInformation CommandCategory = "information"
	CategoryEnvironment CommandCategory = "environment"
)

// Capabilities describes operational features a command supports
type Capabilities struct {
	SupportsJSON   bool
	SupportsDryRun bool
}

// GetDefaultCapabilities returns the conventional capabilities for a
// group/category pair. Every command can emit JSON; only generation
// commands support dry-run.
func GetDefaultCapabilities(_ CommandGroup, category CommandCategory) Capabilities {
	return Capabilities{
		SupportsJSON:   true,
		SupportsDryRun: category == CategoryGeneration,
	}
}

// CommandRegistration represents a registered command with its classification
type CommandRegistration struct {
	Name         string
	Group        CommandGroup
	Category     CommandCategory
	Capabilities Capabilities
	Command      *cobra.Command
	Description  string
}

// Registry manages command classifications and registrations
type Registry struct {
	mu         sync.RWMutex
	commands   map[string]*CommandRegistration
	groupIndex map[CommandGroup][]*CommandRegistration
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands:   make(map[string]*CommandRegistration),
		groupIndex: make(map[CommandGroup][]*CommandRegistration),
	}
}

// Global registry instance
var globalRegistry = NewRegistry()

// GetRegistry returns the global command registry
func GetRegistry() *Registry {
	return globalRegistry
}

// RegisterCommand registers a command with its operational classification
func RegisterCommand(name string, group CommandGroup, cmd *cobra.Command, description string) error {
	return GetRegistry().Register(name, group, cmd, description)
}

// RegisterCommandWithTaxonomy registers a command with full taxonomy metadata
func RegisterCommandWithTaxonomy(name string, group CommandGroup, category CommandCategory, capabilities Capabilities, cmd *cobra.Command, description string) error {
	return GetRegistry().RegisterWithTaxonomy(name, group, category, capabilities, cmd, description)
}

// Register adds a command to the registry
func (r *Registry) Register(name string, group CommandGroup, cmd *cobra.Command, description string) error {
	return r.add(&CommandRegistration{
		Name:        name,
		Group:       group,
		Command:     cmd,
		Description: description,
	})
}

// RegisterWithTaxonomy adds a command with category and capability
// metadata, rejecting categories that do not belong to the group.
func (r *Registry) RegisterWithTaxonomy(name string, group CommandGroup, category CommandCategory, capabilities Capabilities, cmd *cobra.Command, description string) error {
	if !isCategoryAllowed(category, group) {
		return fmt.Errorf("category %s not allowed for group %s", category, group)
	}
	return r.add(&CommandRegistration{
		Name:         name,
		Group:        group,
		Category:     category,
		Capabilities: capabilities,
		Command:      cmd,
		Description:  description,
	})
}

func (r *Registry) add(registration *CommandRegistration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.commands[registration.Name]; exists {
		return fmt.Errorf("command %s already registered", registration.Name)
	}

	r.commands[registration.Name] = registration
	r.groupIndex[registration.Group] = append(r.groupIndex[registration.Group], registration)
	return nil
}

// GetCommand returns a registered command by name
func (r *Registry) GetCommand(name string) (*CommandRegistration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cmd, exists := r.commands[name]
	return cmd, exists
}

// GetCommandsByGroup returns all commands in a specific group
func (r *Registry) GetCommandsByGroup(group CommandGroup) []*CommandRegistration {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.groupIndex[group]
}

// GetNeatCommands returns all commands classified as "neat" operations
func (r *Registry) GetNeatCommands() []*CommandRegistration {
	return r.GetCommandsByGroup(GroupNeat)
}

// GetAllCommands returns all registered commands
func (r *Registry) GetAllCommands() map[string]*CommandRegistration {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string]*CommandRegistration)
	for k, v := range r.commands {
		result[k] = v
	}
	return result
}

// ListGroups returns all command groups and their command counts
func (r *Registry) ListGroups() map[CommandGroup]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[CommandGroup]int)
	for group, commands := range r.groupIndex {
		result[group] = len(commands)
	}
	return result
}

func isCategoryAllowed(category CommandCategory, group CommandGroup) bool {
	for _, allowed := range getAllowedCategories()[group] {
		if allowed == category {
			return true
		}
	}
	return false
}

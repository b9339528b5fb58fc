package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	_ "github.com/vovakirdan/tomb-engine/internal/objects" // Register object behaviours
	"github.com/vovakirdan/tomb-engine/internal/registry"
)

var objectsCmd = &cobra.Command{
	Use:   "objects",
	Short: "List all registered object types",
	Long:  `Shows every object type a level can place, with the behaviour slots it fills.`,
	Run:   runObjects,
}

func runObjects(cmd *cobra.Command, args []string) {
	objs := registry.List()

	if len(objs) == 0 {
		fmt.Println("No objects registered.")
		return
	}

	fmt.Println("Registered objects:")
	fmt.Println()

	// Calculate column widths
	maxNameLen := 4 // "Name" header
	for _, o := range objs {
		if len(o.Name) > maxNameLen {
			maxNameLen = len(o.Name)
		}
	}

	fmt.Printf("  %-4s  %-*s  %-6s  %s\n", "ID", maxNameLen, "Name", "Kind", "Slots")
	fmt.Printf("  %-4s  %-*s  %-6s  %s\n", "--", maxNameLen, "----", "----", "-----")

	for _, o := range objs {
		fmt.Printf("  %-4d  %-*s  %-6s  %s\n", o.ID, maxNameLen, o.Name, o.Kind, strings.Join(o.Slots(), ","))
	}

	fmt.Println()
	fmt.Println("Place objects in a level's items list by name.")
}

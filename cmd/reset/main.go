package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/osse101/ShadowArmy_Go/internal/bootstrap"
	"github.com/osse101/ShadowArmy_Go/internal/config"
	"github.com/osse101/ShadowArmy_Go/internal/domain"
)

// reset deletes a save slot from the configured storage so the next start
// begins a fresh game. With -list it only prints the existing slots.
func main() {
	list := flag.Bool("list", false, "list save slots and exit")
	slot := flag.String("slot", "", "slot to delete (defaults to SAVE_SLOT)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *slot == "" {
		*slot = cfg.SaveSlot
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repos, err := bootstrap.InitializeRepositories(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer repos.Close()

	if *list {
		slots, err := repos.Snapshot.ListSlots(ctx)
		if err != nil {
			log.Fatalf("Failed to list slots: %v", err)
		}
		for _, s := range slots {
			fmt.Println(s)
		}
		return
	}

	log.Printf("Deleting save slot %q (%s storage)...\n", *slot, cfg.StorageDriver)
	err = repos.Snapshot.DeleteSnapshot(ctx, *slot)
	switch {
	case errors.Is(err, domain.ErrSnapshotNotFound):
		log.Printf("Slot %q has no save, nothing to do.\n", *slot)
	case err != nil:
		log.Fatalf("Failed to delete slot: %v", err)
	default:
		log.Printf("Slot %q deleted.\n", *slot)
	}
}

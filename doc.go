/*
Package nsweep launches hyperparameter grid sweeps against an external
neural-rendering trainer.

A sweep is the Cartesian product of one or more axes (grid resolution,
initialization scheme, transition functions, sigma values, alpha schedules).
For every point of the grid, nsweep builds one trainer command line — a fixed
baseline plus one flag per axis — pins a GPU device through an environment
variable, and runs the trainer as a blocking subprocess. The trainer itself
(ns-train and its model presets) is a black box; nsweep only orchestrates it.

# Key Features

  - Deterministic enumeration: axes iterate in declaration order, first axis
    slowest, so a sweep always produces the same ordered invocation list.
  - Durable ledger: every run outcome is persisted (file or Redis), enabling
    stop & resume without relaunching finished training runs.
  - Explicit failure policy: continue past failures (the classic sweep-script
    behavior), abort on first failure, or retry with a bounded budget.
  - Hexagonal Architecture: the engine is decoupled from the launcher and
    stores, so tests and embedders can swap any of them.

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/voxfield/nsweep"
		"github.com/voxfield/nsweep/pkg/domain"
	)

	func main() {
		sweep := domain.NewSweep("gnerf")
		sweep.Data = "data/nerfstudio/desolation"
		sweep.Axes = []domain.Axis{
			{Name: "f_grid_resolution", Values: []string{"128", "256"}},
			{Name: "f_init", Values: []string{"ones", "zeros", "rand"}},
		}

		eng, err := nsweep.New(sweep)
		if err != nil {
			log.Fatal(err)
		}

		state, err := eng.Run(context.Background())
		if err != nil {
			log.Fatal(err)
		}
		succeeded, failed, _ := state.Counts()
		log.Printf("done: %d succeeded, %d failed", succeeded, failed)
	}
*/
package nsweep

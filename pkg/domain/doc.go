/*
Package domain contains the core domain models for the nsweep launcher.

It defines the fundamental entities of a hyperparameter sweep, such as Axes,
the Sweep configuration, and materialized Invocations. This package is kept
pure and free of external dependencies like I/O or persistence, following
Hexagonal Architecture principles.

# Key Entities

  - Axis: One swept hyperparameter and its ordered candidate values.
  - Sweep: The full configuration — trainer command, baseline flags, axes,
    device pinning and failure policy.
  - Invocation: One fully-specified trainer command line for a single point
    of the grid.
  - SweepState: The durable ledger of run outcomes, enabling stop & resume.
*/
package domain

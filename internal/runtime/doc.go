/*
Package runtime contains the sweep engine.

The engine expands the configured axes into the deterministic grid of
invocations, then drives them through the TrainerLauncher one at a time per
device, recording every outcome in the RunStore. Failure policy, resume and
lifecycle hooks all live here; the adapters stay mechanism-only.
*/
package runtime

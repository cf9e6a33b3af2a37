// Package model defines core types shared across phastar packages.
//
// # Scoring Types
//
//   - Observation: flat, channel-major numeric encoding of one environment state
//   - Shape: fixed (C, H, W) layout of observations for one environment instance
//   - Inference: per-observation network output (logits, policy, log-policy, heuristic)
//
// # Search Types
//
//   - Action: environment action identifier; NoAction marks the root node
//   - Outcome: per-job search result with the reconstructed action path
package model

// Package riskmodel implements the feature-based content-risk
// classifier: deterministic stylistic feature extraction, a
// standardizing scaler plus logistic classifier for inference, an
// offline trainer, and JSON persistence for the trained bundle.
//
// Inference is local and bounded-time; the model is immutable once
// loaded, so concurrent Predict calls need no locking.
package riskmodel

// SPDX-License-Identifier: MPL-2.0

// Package issue defines user-facing failure reporting: ActionableError for
// structured operation/resource/suggestion messages, and a catalog of
// remediation cards rendered as markdown for the fatal failure kinds the
// provisioning workflow can hit.
package issue

// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package stack

import (
	"context"
	"fmt"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/identity"
)

// compartment returns the compartment OCID, resolving it by name under the
// tenancy on first use when only a name was configured.
func (s *Stack) compartment(ctx context.Context) (string, error) {
	if s.compartmentID != "" {
		return s.compartmentID, nil
	}

	id, err := s.compartmentIDByName(ctx, s.compartmentName)
	if err != nil {
		return "", err
	}
	s.compartmentID = id
	return id, nil
}

// compartmentIDByName walks the tenancy's accessible compartment subtree and
// returns the first compartment whose name matches exactly.
func (s *Stack) compartmentIDByName(ctx context.Context, name string) (string, error) {
	req := identity.ListCompartmentsRequest{
		CompartmentId:          common.String(s.tenancyID),
		CompartmentIdInSubtree: common.Bool(true),
		AccessLevel:            identity.ListCompartmentsAccessLevelAccessible,
	}

	for {
		resp, err := s.identity.ListCompartments(ctx, req)
		if err != nil {
			return "", fmt.Errorf("failed to list compartments: %w", err)
		}
		for _, compartment := range resp.Items {
			if compartment.Name != nil && *compartment.Name == name {
				return *compartment.Id, nil
			}
		}
		if resp.OpcNextPage == nil {
			return "", fmt.Errorf("compartment %q: %w", name, ErrNotFound)
		}
		req.Page = resp.OpcNextPage
	}
}

// firstAvailabilityDomain returns the name of the compartment's first
// availability domain. One AD is enough for this single-subnet stack; regions
// with multiple ADs could spread subnets for redundancy.
func (s *Stack) firstAvailabilityDomain(ctx context.Context, compartmentID string) (string, error) {
	resp, err := s.identity.ListAvailabilityDomains(ctx, identity.ListAvailabilityDomainsRequest{
		CompartmentId: common.String(compartmentID),
	})
	if err != nil {
		return "", fmt.Errorf("failed to list availability domains: %w", err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Name == nil {
		return "", fmt.Errorf("no availability domains in compartment %s", compartmentID)
	}
	return *resp.Items[0].Name, nil
}

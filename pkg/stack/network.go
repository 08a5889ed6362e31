// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package stack

import (
	"context"
	"errors"
	"fmt"

	"github.com/oracle/oci-go-sdk/v65/common"
	"github.com/oracle/oci-go-sdk/v65/core"
	"github.com/platform-engineering-labs/fnstack/pkg/lifecycle"
)

// === VCN ===

func (s *Stack) createVCN(ctx context.Context, compartmentID string) (core.Vcn, error) {
	name := VcnName(s.namePrefix)

	resp, err := s.network.CreateVcn(ctx, core.CreateVcnRequest{
		CreateVcnDetails: core.CreateVcnDetails{
			CompartmentId: common.String(compartmentID),
			DisplayName:   common.String(name),
			CidrBlock:     common.String(vcnCidrBlock),
		},
	})
	if err != nil {
		return core.Vcn{}, fmt.Errorf("failed to create VCN: %w", err)
	}

	err = lifecycle.WaitForState(ctx, s.wait, func(ctx context.Context) (string, error) {
		get, err := s.network.GetVcn(ctx, core.GetVcnRequest{VcnId: resp.Id})
		if err != nil {
			return "", err
		}
		return string(get.LifecycleState), nil
	}, string(core.VcnLifecycleStateAvailable))
	if err != nil {
		return core.Vcn{}, fmt.Errorf("waiting for VCN %s: %w", *resp.Id, err)
	}

	s.log.Info("created VCN", "name", name, "id", *resp.Id)
	return resp.Vcn, nil
}

func (s *Stack) lookupVCN(ctx context.Context, compartmentID string) (core.Vcn, error) {
	name := VcnName(s.namePrefix)
	var matches []core.Vcn

	req := core.ListVcnsRequest{
		CompartmentId: common.String(compartmentID),
		DisplayName:   common.String(name),
	}
	for {
		resp, err := s.network.ListVcns(ctx, req)
		if err != nil {
			return core.Vcn{}, fmt.Errorf("failed to list VCNs: %w", err)
		}
		for _, vcn := range resp.Items {
			if vcn.DisplayName != nil && *vcn.DisplayName == name {
				matches = append(matches, vcn)
			}
		}
		if resp.OpcNextPage == nil {
			break
		}
		req.Page = resp.OpcNextPage
	}

	return uniqueMatch(matches, "VCN", name)
}

// === Internet gateway ===

func (s *Stack) createInternetGateway(ctx context.Context, compartmentID, vcnID string) (core.InternetGateway, error) {
	name := InternetGatewayName(s.namePrefix)

	resp, err := s.network.CreateInternetGateway(ctx, core.CreateInternetGatewayRequest{
		CreateInternetGatewayDetails: core.CreateInternetGatewayDetails{
			CompartmentId: common.String(compartmentID),
			VcnId:         common.String(vcnID),
			DisplayName:   common.String(name),
			IsEnabled:     common.Bool(true),
		},
	})
	if err != nil {
		return core.InternetGateway{}, fmt.Errorf("failed to create internet gateway: %w", err)
	}

	err = lifecycle.WaitForState(ctx, s.wait, func(ctx context.Context) (string, error) {
		get, err := s.network.GetInternetGateway(ctx, core.GetInternetGatewayRequest{IgId: resp.Id})
		if err != nil {
			return "", err
		}
		return string(get.LifecycleState), nil
	}, string(core.InternetGatewayLifecycleStateAvailable))
	if err != nil {
		return core.InternetGateway{}, fmt.Errorf("waiting for internet gateway %s: %w", *resp.Id, err)
	}

	s.log.Info("created internet gateway", "name", name, "id", *resp.Id)
	return resp.InternetGateway, nil
}

func (s *Stack) lookupInternetGateway(ctx context.Context, compartmentID, vcnID string) (core.InternetGateway, error) {
	name := InternetGatewayName(s.namePrefix)
	var matches []core.InternetGateway

	req := core.ListInternetGatewaysRequest{
		CompartmentId: common.String(compartmentID),
		VcnId:         common.String(vcnID),
		DisplayName:   common.String(name),
	}
	for {
		resp, err := s.network.ListInternetGateways(ctx, req)
		if err != nil {
			return core.InternetGateway{}, fmt.Errorf("failed to list internet gateways: %w", err)
		}
		for _, gateway := range resp.Items {
			if gateway.DisplayName != nil && *gateway.DisplayName == name {
				matches = append(matches, gateway)
			}
		}
		if resp.OpcNextPage == nil {
			break
		}
		req.Page = resp.OpcNextPage
	}

	return uniqueMatch(matches, "internet gateway", name)
}

func (s *Stack) removeInternetGateway(ctx context.Context, compartmentID, vcnID string) (Outcome, error) {
	gateway, err := s.lookupInternetGateway(ctx, compartmentID, vcnID)
	if errors.Is(err, ErrNotFound) {
		return OutcomeNotFound, nil
	}
	if err != nil {
		return 0, err
	}

	if _, err := s.network.DeleteInternetGateway(ctx, core.DeleteInternetGatewayRequest{
		IgId: gateway.Id,
	}); err != nil {
		if isServiceNotFound(err) {
			return OutcomeNotFound, nil
		}
		return 0, fmt.Errorf("failed to delete internet gateway %s: %w", *gateway.Id, err)
	}
	return OutcomeDeleted, nil
}

// === Route table ===

// configureInternetRoute appends a catch-all rule routing traffic through the
// gateway to the VCN's default route table. The update is a full replace of
// the rule list; existing rules are preserved, and a pre-existing rule for the
// same destination is not merged.
func (s *Stack) configureInternetRoute(ctx context.Context, compartmentID, vcnID, gatewayID string) error {
	routeTable, err := s.lookupRouteTable(ctx, compartmentID, vcnID)
	if err != nil {
		return err
	}

	rules := append(routeTable.RouteRules, core.RouteRule{
		Destination:     common.String(internetDestination),
		DestinationType: core.RouteRuleDestinationTypeCidrBlock,
		NetworkEntityId: common.String(gatewayID),
	})

	if _, err := s.network.UpdateRouteTable(ctx, core.UpdateRouteTableRequest{
		RtId: routeTable.Id,
		UpdateRouteTableDetails: core.UpdateRouteTableDetails{
			RouteRules: rules,
		},
	}); err != nil {
		return fmt.Errorf("failed to update route table %s: %w", *routeTable.Id, err)
	}

	s.log.Info("configured internet route", "routeTable", *routeTable.Id, "destination", internetDestination)
	return nil
}

func (s *Stack) lookupRouteTable(ctx context.Context, compartmentID, vcnID string) (core.RouteTable, error) {
	name := DefaultRouteTableName(s.namePrefix)
	var matches []core.RouteTable

	req := core.ListRouteTablesRequest{
		CompartmentId: common.String(compartmentID),
		VcnId:         common.String(vcnID),
		DisplayName:   common.String(name),
	}
	for {
		resp, err := s.network.ListRouteTables(ctx, req)
		if err != nil {
			return core.RouteTable{}, fmt.Errorf("failed to list route tables: %w", err)
		}
		for _, routeTable := range resp.Items {
			if routeTable.DisplayName != nil && *routeTable.DisplayName == name {
				matches = append(matches, routeTable)
			}
		}
		if resp.OpcNextPage == nil {
			break
		}
		req.Page = resp.OpcNextPage
	}

	return uniqueMatch(matches, "route table", name)
}

// resetRouteTable empties the default route table's rule list. The default
// table cannot be deleted independently of its VCN, but it must not reference
// the gateway when the gateway is deleted.
func (s *Stack) resetRouteTable(ctx context.Context, compartmentID, vcnID string) (Outcome, error) {
	routeTable, err := s.lookupRouteTable(ctx, compartmentID, vcnID)
	if errors.Is(err, ErrNotFound) {
		return OutcomeNotFound, nil
	}
	if err != nil {
		return 0, err
	}

	if _, err := s.network.UpdateRouteTable(ctx, core.UpdateRouteTableRequest{
		RtId: routeTable.Id,
		UpdateRouteTableDetails: core.UpdateRouteTableDetails{
			RouteRules: []core.RouteRule{},
		},
	}); err != nil {
		if isServiceNotFound(err) {
			return OutcomeNotFound, nil
		}
		return 0, fmt.Errorf("failed to reset route table %s: %w", *routeTable.Id, err)
	}
	return OutcomeDeleted, nil
}

// === Subnet ===

func (s *Stack) createSubnet(ctx context.Context, compartmentID, vcnID, availabilityDomain string) (core.Subnet, error) {
	name := SubnetName(s.namePrefix)

	resp, err := s.network.CreateSubnet(ctx, core.CreateSubnetRequest{
		CreateSubnetDetails: core.CreateSubnetDetails{
			CompartmentId:      common.String(compartmentID),
			VcnId:              common.String(vcnID),
			DisplayName:        common.String(name),
			AvailabilityDomain: common.String(availabilityDomain),
			CidrBlock:          common.String(subnetCidrBlock),
		},
	})
	if err != nil {
		return core.Subnet{}, fmt.Errorf("failed to create subnet: %w", err)
	}

	err = lifecycle.WaitForState(ctx, s.wait, func(ctx context.Context) (string, error) {
		get, err := s.network.GetSubnet(ctx, core.GetSubnetRequest{SubnetId: resp.Id})
		if err != nil {
			return "", err
		}
		return string(get.LifecycleState), nil
	}, string(core.SubnetLifecycleStateAvailable))
	if err != nil {
		return core.Subnet{}, fmt.Errorf("waiting for subnet %s: %w", *resp.Id, err)
	}

	s.log.Info("created subnet", "name", name, "id", *resp.Id)
	return resp.Subnet, nil
}

func (s *Stack) lookupSubnet(ctx context.Context, compartmentID, vcnID string) (core.Subnet, error) {
	name := SubnetName(s.namePrefix)
	var matches []core.Subnet

	req := core.ListSubnetsRequest{
		CompartmentId: common.String(compartmentID),
		VcnId:         common.String(vcnID),
		DisplayName:   common.String(name),
	}
	for {
		resp, err := s.network.ListSubnets(ctx, req)
		if err != nil {
			return core.Subnet{}, fmt.Errorf("failed to list subnets: %w", err)
		}
		for _, subnet := range resp.Items {
			if subnet.DisplayName != nil && *subnet.DisplayName == name {
				matches = append(matches, subnet)
			}
		}
		if resp.OpcNextPage == nil {
			break
		}
		req.Page = resp.OpcNextPage
	}

	return uniqueMatch(matches, "subnet", name)
}

func (s *Stack) removeSubnet(ctx context.Context, compartmentID, vcnID string) (Outcome, error) {
	subnet, err := s.lookupSubnet(ctx, compartmentID, vcnID)
	if errors.Is(err, ErrNotFound) {
		return OutcomeNotFound, nil
	}
	if err != nil {
		return 0, err
	}

	if _, err := s.network.DeleteSubnet(ctx, core.DeleteSubnetRequest{
		SubnetId: subnet.Id,
	}); err != nil {
		if isServiceNotFound(err) {
			return OutcomeNotFound, nil
		}
		return 0, fmt.Errorf("failed to delete subnet %s: %w", *subnet.Id, err)
	}
	return OutcomeDeleted, nil
}

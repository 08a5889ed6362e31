// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

// Package stack orchestrates the minimal OCI resources needed to invoke a
// serverless function: a VCN, an internet gateway, a default-route-table
// rule, a subnet, a Functions application and a function. No identifiers are
// persisted between runs; every resource is recovered by its derived display
// name.
package stack

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/oracle/oci-go-sdk/v65/core"
	"github.com/oracle/oci-go-sdk/v65/functions"
	"github.com/platform-engineering-labs/fnstack/pkg/client"
	"github.com/platform-engineering-labs/fnstack/pkg/config"
	"github.com/platform-engineering-labs/fnstack/pkg/lifecycle"
)

const (
	vcnCidrBlock    = "10.0.0.0/16"
	subnetCidrBlock = "10.0.0.0/24"

	// Route destination granting the subnet internet access via the gateway.
	internetDestination = "0.0.0.0/0"

	functionMemoryInMBs      = int64(128)
	functionTimeoutInSeconds = 30
)

// Stack sequences create, lookup, invoke and delete calls against the OCI
// control plane. There is exactly one logical actor; no state is shared
// beyond the configuration threaded through every call.
type Stack struct {
	network    VirtualNetworkAPI
	fnMgmt     FunctionsManagementAPI
	identity   IdentityAPI
	invokerFor func(endpoint string) (FunctionsInvokeAPI, error)

	namePrefix string
	image      string

	// compartmentID is resolved lazily from compartmentName when it was not
	// supplied directly.
	compartmentID   string
	compartmentName string
	tenancyID       string

	wait lifecycle.Policy
	log  *slog.Logger
}

// New builds a Stack backed by real OCI clients.
func New(clients *client.Clients, cfg *config.Config) (*Stack, error) {
	network, err := clients.GetVirtualNetworkClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get VirtualNetwork client: %w", err)
	}
	fnMgmt, err := clients.GetFunctionsManagementClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get FunctionsManagement client: %w", err)
	}
	identityClient, err := clients.GetIdentityClient()
	if err != nil {
		return nil, fmt.Errorf("failed to get Identity client: %w", err)
	}

	tenancyID := ""
	if cfg.CompartmentID == "" {
		tenancyID, err = clients.GetConfigurationProvider().TenancyOCID()
		if err != nil {
			return nil, fmt.Errorf("failed to read tenancy OCID: %w", err)
		}
	}

	return &Stack{
		network:  network,
		fnMgmt:   fnMgmt,
		identity: identityClient,
		invokerFor: func(endpoint string) (FunctionsInvokeAPI, error) {
			return clients.GetFunctionsInvokeClient(endpoint)
		},
		namePrefix:      cfg.NamePrefix,
		image:           cfg.Image,
		compartmentID:   cfg.CompartmentID,
		compartmentName: cfg.CompartmentName,
		tenancyID:       tenancyID,
		wait: lifecycle.Policy{
			PollInterval: cfg.PollInterval,
			Timeout:      cfg.WaitTimeout,
		},
		log: slog.Default(),
	}, nil
}

// Setup creates the full resource chain in strict dependency order. Each
// create blocks until the resource reports its ready lifecycle state. A
// failure propagates immediately; teardown is the recovery path.
func (s *Stack) Setup(ctx context.Context) error {
	compartmentID, err := s.compartment(ctx)
	if err != nil {
		return err
	}

	vcn, err := s.createVCN(ctx, compartmentID)
	if err != nil {
		return err
	}

	gateway, err := s.createInternetGateway(ctx, compartmentID, *vcn.Id)
	if err != nil {
		return err
	}

	if err := s.configureInternetRoute(ctx, compartmentID, *vcn.Id, *gateway.Id); err != nil {
		return err
	}

	availabilityDomain, err := s.firstAvailabilityDomain(ctx, compartmentID)
	if err != nil {
		return err
	}
	s.log.Info("using availability domain", "name", availabilityDomain)

	subnet, err := s.createSubnet(ctx, compartmentID, *vcn.Id, availabilityDomain)
	if err != nil {
		return err
	}

	app, err := s.createApplication(ctx, compartmentID, []string{*subnet.Id})
	if err != nil {
		return err
	}

	if _, err := s.createFunction(ctx, *app.Id); err != nil {
		return err
	}
	return nil
}

// Invoke resolves the application and function by name, binds an invoke
// client to the function's dedicated endpoint and issues one synchronous
// invocation with the given payload. The raw response body is returned
// unmodified.
func (s *Stack) Invoke(ctx context.Context, content string) (string, error) {
	compartmentID, err := s.compartment(ctx)
	if err != nil {
		return "", err
	}

	app, err := s.lookupApplication(ctx, compartmentID)
	if err != nil {
		return "", err
	}
	fn, err := s.lookupFunction(ctx, *app.Id)
	if err != nil {
		return "", err
	}

	return s.invokeFunction(ctx, fn, content)
}

// Teardown removes every resource that setup creates, in reverse dependency
// order. Lookups tolerate not-found so partial state from earlier failed runs
// is cleaned up, and a run with nothing provisioned is a no-op. The default
// route table cannot be deleted, so its rules are reset to empty before the
// VCN goes away.
func (s *Stack) Teardown(ctx context.Context) error {
	compartmentID, err := s.compartment(ctx)
	if err != nil {
		return err
	}

	app, err := s.lookupApplication(ctx, compartmentID)
	switch {
	case err == nil:
		outcome, err := s.removeFunction(ctx, *app.Id)
		if err != nil {
			return err
		}
		s.log.Info("function", "name", FunctionName(s.namePrefix), "outcome", outcome.String())

		if _, err := s.fnMgmt.DeleteApplication(ctx, functions.DeleteApplicationRequest{
			ApplicationId: app.Id,
		}); err != nil && !isServiceNotFound(err) {
			return fmt.Errorf("failed to delete application %s: %w", *app.Id, err)
		}
		s.log.Info("application", "name", ApplicationName(s.namePrefix), "outcome", OutcomeDeleted.String())
	case errors.Is(err, ErrNotFound):
		s.log.Info("application", "name", ApplicationName(s.namePrefix), "outcome", OutcomeNotFound.String())
	default:
		return err
	}

	vcn, err := s.lookupVCN(ctx, compartmentID)
	if errors.Is(err, ErrNotFound) {
		s.log.Info("VCN", "name", VcnName(s.namePrefix), "outcome", OutcomeNotFound.String())
		return nil
	}
	if err != nil {
		return err
	}

	outcome, err := s.removeSubnet(ctx, compartmentID, *vcn.Id)
	if err != nil {
		return err
	}
	s.log.Info("subnet", "name", SubnetName(s.namePrefix), "outcome", outcome.String())

	outcome, err = s.resetRouteTable(ctx, compartmentID, *vcn.Id)
	if err != nil {
		return err
	}
	s.log.Info("route table", "name", DefaultRouteTableName(s.namePrefix), "outcome", outcome.String())

	outcome, err = s.removeInternetGateway(ctx, compartmentID, *vcn.Id)
	if err != nil {
		return err
	}
	s.log.Info("internet gateway", "name", InternetGatewayName(s.namePrefix), "outcome", outcome.String())

	if _, err := s.network.DeleteVcn(ctx, core.DeleteVcnRequest{VcnId: vcn.Id}); err != nil && !isServiceNotFound(err) {
		return fmt.Errorf("failed to delete VCN %s: %w", *vcn.Id, err)
	}
	s.log.Info("VCN", "name", VcnName(s.namePrefix), "outcome", OutcomeDeleted.String())

	return nil
}

// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package stack

import (
	"context"

	"github.com/oracle/oci-go-sdk/v65/core"
	"github.com/oracle/oci-go-sdk/v65/functions"
	"github.com/oracle/oci-go-sdk/v65/identity"
)

// VirtualNetworkAPI is the slice of core.VirtualNetworkClient the stack uses.
type VirtualNetworkAPI interface {
	CreateVcn(ctx context.Context, request core.CreateVcnRequest) (core.CreateVcnResponse, error)
	GetVcn(ctx context.Context, request core.GetVcnRequest) (core.GetVcnResponse, error)
	ListVcns(ctx context.Context, request core.ListVcnsRequest) (core.ListVcnsResponse, error)
	DeleteVcn(ctx context.Context, request core.DeleteVcnRequest) (core.DeleteVcnResponse, error)

	CreateInternetGateway(ctx context.Context, request core.CreateInternetGatewayRequest) (core.CreateInternetGatewayResponse, error)
	GetInternetGateway(ctx context.Context, request core.GetInternetGatewayRequest) (core.GetInternetGatewayResponse, error)
	ListInternetGateways(ctx context.Context, request core.ListInternetGatewaysRequest) (core.ListInternetGatewaysResponse, error)
	DeleteInternetGateway(ctx context.Context, request core.DeleteInternetGatewayRequest) (core.DeleteInternetGatewayResponse, error)

	ListRouteTables(ctx context.Context, request core.ListRouteTablesRequest) (core.ListRouteTablesResponse, error)
	UpdateRouteTable(ctx context.Context, request core.UpdateRouteTableRequest) (core.UpdateRouteTableResponse, error)

	CreateSubnet(ctx context.Context, request core.CreateSubnetRequest) (core.CreateSubnetResponse, error)
	GetSubnet(ctx context.Context, request core.GetSubnetRequest) (core.GetSubnetResponse, error)
	ListSubnets(ctx context.Context, request core.ListSubnetsRequest) (core.ListSubnetsResponse, error)
	DeleteSubnet(ctx context.Context, request core.DeleteSubnetRequest) (core.DeleteSubnetResponse, error)
}

// FunctionsManagementAPI is the slice of functions.FunctionsManagementClient
// the stack uses.
type FunctionsManagementAPI interface {
	CreateApplication(ctx context.Context, request functions.CreateApplicationRequest) (functions.CreateApplicationResponse, error)
	GetApplication(ctx context.Context, request functions.GetApplicationRequest) (functions.GetApplicationResponse, error)
	ListApplications(ctx context.Context, request functions.ListApplicationsRequest) (functions.ListApplicationsResponse, error)
	DeleteApplication(ctx context.Context, request functions.DeleteApplicationRequest) (functions.DeleteApplicationResponse, error)

	CreateFunction(ctx context.Context, request functions.CreateFunctionRequest) (functions.CreateFunctionResponse, error)
	GetFunction(ctx context.Context, request functions.GetFunctionRequest) (functions.GetFunctionResponse, error)
	ListFunctions(ctx context.Context, request functions.ListFunctionsRequest) (functions.ListFunctionsResponse, error)
	DeleteFunction(ctx context.Context, request functions.DeleteFunctionRequest) (functions.DeleteFunctionResponse, error)
}

// IdentityAPI covers compartment and availability-domain listing.
type IdentityAPI interface {
	ListCompartments(ctx context.Context, request identity.ListCompartmentsRequest) (identity.ListCompartmentsResponse, error)
	ListAvailabilityDomains(ctx context.Context, request identity.ListAvailabilityDomainsRequest) (identity.ListAvailabilityDomainsResponse, error)
}

// FunctionsInvokeAPI is a client bound to one function's invoke endpoint.
type FunctionsInvokeAPI interface {
	InvokeFunction(ctx context.Context, request functions.InvokeFunctionRequest) (functions.InvokeFunctionResponse, error)
}

var (
	_ VirtualNetworkAPI      = (*core.VirtualNetworkClient)(nil)
	_ FunctionsManagementAPI = (*functions.FunctionsManagementClient)(nil)
	_ IdentityAPI            = (*identity.IdentityClient)(nil)
	_ FunctionsInvokeAPI     = (*functions.FunctionsInvokeClient)(nil)
)

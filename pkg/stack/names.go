// © 2025 Platform Engineering Labs Inc.
//
// SPDX-License-Identifier: FSL-1.1-ALv2

package stack

// Display names for every resource are derived from a single run prefix.
// Setup and teardown must derive identically, since names are the only
// cross-run resource key.

func VcnName(prefix string) string {
	return prefix + "-vcn"
}

func InternetGatewayName(prefix string) string {
	return prefix + "-ig"
}

// DefaultRouteTableName is the display name OCI assigns to the route table
// created alongside a VCN.
func DefaultRouteTableName(prefix string) string {
	return "Default Route Table for " + VcnName(prefix)
}

func SubnetName(prefix string) string {
	return prefix + "-subnet"
}

func ApplicationName(prefix string) string {
	return prefix + "-app"
}

func FunctionName(prefix string) string {
	return prefix + "-fn"
}

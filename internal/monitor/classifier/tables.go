package classifier

// DefaultTable returns the seed severity taxonomy. The membership is product
// policy rather than an architectural contract; deployments override it via
// LoadTable without touching code.
func DefaultTable() Table {
	return Table{
		Critical: []string{
			// Access key lifecycle
			"CreateAccessKey", "DeleteAccessKey", "UpdateAccessKey",
			// Console credentials
			"CreateLoginProfile", "UpdateLoginProfile", "DeleteLoginProfile",
			// MFA devices
			"EnableMFADevice", "DeactivateMFADevice", "DeleteVirtualMFADevice",
			"CreateVirtualMFADevice", "ResyncMFADevice",
			// User and role policy mutations
			"AttachUserPolicy", "DetachUserPolicy", "PutUserPolicy", "DeleteUserPolicy",
			"CreateUser", "DeleteUser",
			"CreateRole", "DeleteRole", "AttachRolePolicy", "DetachRolePolicy",
			"UpdateAssumeRolePolicy", "PutRolePolicy",
			"CreatePolicy", "CreatePolicyVersion",
			// Account recovery
			"PasswordRecoveryRequested", "PasswordUpdated",
			// Interactive sessions
			"ConsoleLogin",
		},
		High: []string{
			// Audit trail teardown
			"StopLogging", "DeleteTrail", "UpdateTrail", "PutEventSelectors",
			"DeleteFlowLogs", "DeleteVpcPeeringConnection",
			// Network exposure
			"AuthorizeSecurityGroupIngress", "RevokeSecurityGroupIngress",
			"CreateSecurityGroup", "DeleteSecurityGroup",
			// Compute provisioning
			"RunInstances", "TerminateInstances",
			// Storage exposure
			"CreateBucket", "DeleteBucket", "PutBucketPolicy", "DeleteBucketPolicy",
			"PutBucketPublicAccessBlock",
			// Stack-level changes
			"CreateStack", "DeleteStack", "UpdateStack",
		},
	}
}

/*
Package collabsdk is the Go client for the innosync collaboration service.

A Client covers the public endpoints and opens Sessions:

	client := collabsdk.NewClient("https://collab.example.com")
	session, err := client.Login(ctx, "owner@example.com", "password")

A Session carries the caller's tokens and refreshes the access token when it
is about to expire, or when the server rejects it:

	project, err := session.CreateProject(ctx, "Innosync")
	role, err := session.AddRole(ctx, project.ID, collabsdk.CreateRoleRequest{
		RoleName:       "Backend",
		ExpertiseLevel: "SENIOR",
	})
	inv, err := session.Invite(ctx, role.ID, recipientID)

Failed calls return an *APIError. Compare with errors.Is against the
predefined values, which match on error code:

	if errors.Is(err, collabsdk.ErrConflict) {
		// already invited
	}

The same APIError values are written by the server, so both sides agree on
status codes and error codes.
*/
package collabsdk

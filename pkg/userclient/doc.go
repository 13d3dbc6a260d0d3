/*
Package userclient is a client for the user-management HTTP API.

# Client vs Session

Client wraps the JSON endpoints one to one:

	client := userclient.NewClient("")   // USER_API_URL or http://localhost:4000

	users, err := client.ListUsers(ctx)
	created, err := client.CreateUser(ctx, "Dupont", "Jean")
	err = client.UpdateUserRole(ctx, created.ID, userclient.RoleAdmin)

Session holds the identity of whoever "logged in" and persists it in a
SessionStore under the key "auth_user":

	session, err := userclient.NewSession(client, userclient.NewFileStore(""))
	user, err := session.Login(ctx, "Dupont", "Jean")

Login never fails because a name is unknown: it fabricates a guest identity
with role "user" and no id. It verifies no secret.

# Errors

Non-2xx responses are returned as *APIError carrying the status code and the
server's message. Transport failures are returned as *NetworkError.
*/
package userclient

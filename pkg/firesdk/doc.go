/*
Package firesdk is a client for the Tercera fire company API.

# SDKClient vs Session

SDKClient covers the unauthenticated endpoints (login and password reset)
and creates Sessions:

	client := firesdk.NewSDKClient(os.Getenv("TERCERA_API_ORIGIN"))
	tokens, err := client.Login(ctx, rut, password)

A Session reads its bearer token from a TokenSource on every call, so a
session store can hand itself to NewSession and keep tokens current:

	session := client.NewSession(store)
	citaciones, err := session.ListCitaciones(ctx, firesdk.CitacionFilter{})

# Request gateway

Every Session method goes through Session.Do. Headers are merged in a fixed
order: the caller's headers, then "Authorization: Bearer <token>" when a
token is present, then Content-Type. JSON bodies default to
application/json; multipart forms always carry their boundary type. A
caller cannot override Authorization.

# Errors

  - ErrUnauthorized: the API answered 401. SDKClient.OnUnauthorized has
    already run and the body was not read.
  - *RequestError: any other non-2xx status, with a message extracted from
    the body by ExtractErrorMessage.
  - ErrDecode: a success response whose body is not valid JSON.

Use errors.Is and errors.As to inspect them.
*/
package firesdk

package utils

import "testing"

func TestJwtGenerateAndValidate(t *testing.T) {
	token, err := JwtGenerate(42, "ADMIN")
	if err != nil {
		t.Fatalf("JwtGenerate: %v", err)
	}

	validated, err := JwtValidate(token)
	if err != nil {
		t.Fatalf("JwtValidate: %v", err)
	}
	if !validated.Valid {
		t.Fatal("token should be valid")
	}

	claims, ok := validated.Claims.(*JwtCustomClaim)
	if !ok {
		t.Fatalf("unexpected claims type %T", validated.Claims)
	}
	if claims.ID != 42 || claims.Username != "ADMIN" {
		t.Fatalf("claims round trip lost data: %+v", claims)
	}
}

func TestJwtValidate_RejectsGarbage(t *testing.T) {
	if _, err := JwtValidate("not.a.token"); err == nil {
		t.Fatal("garbage token must not validate")
	}
}

// Pacote rbac — mapeamento de grupos do IdP para papéis do back-office.
// Dois papéis: admin (escrita) e readonly (somente leitura).
package rbac

// Papéis em ordem crescente de privilégio.
const (
	RoleReadonly = "readonly"
	RoleAdmin    = "admin"
)

// roleWeight — peso do papel para comparação.
var roleWeight = map[string]int{
	RoleReadonly: 1,
	RoleAdmin:    2,
}

// maxRole devolve o papel de maior privilégio entre os dois.
func maxRole(a, b string) string {
	if roleWeight[a] >= roleWeight[b] {
		return a
	}
	return b
}

// HighestRole devolve o papel de maior privilégio do conjunto.
// Conjunto vazio → string vazia.
func HighestRole(roles []string) string {
	if len(roles) == 0 {
		return ""
	}
	highest := roles[0]
	for _, r := range roles[1:] {
		highest = maxRole(highest, r)
	}
	return highest
}

// MapGroupsToRole determina o papel do usuário a partir dos grupos do IdP.
// Devolve o papel de maior privilégio entre as correspondências;
// string vazia se nenhum grupo corresponder.
func MapGroupsToRole(groups, adminGroups, readonlyGroups []string) string {
	adminSet := toSet(adminGroups)
	readonlySet := toSet(readonlyGroups)

	var roles []string
	for _, g := range groups {
		if adminSet[g] {
			roles = append(roles, RoleAdmin)
		}
		if readonlySet[g] {
			roles = append(roles, RoleReadonly)
		}
	}
	return HighestRole(roles)
}

// IsValidRole verifica se a string é um papel conhecido.
func IsValidRole(role string) bool {
	_, ok := roleWeight[role]
	return ok
}

// toSet converte um slice em conjunto para busca O(1).
func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}

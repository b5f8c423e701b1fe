package domain

// Collection names shared by every storage backend.
const (
	// CredentialsCollection holds one document per credential.
	CredentialsCollection = "credentials"

	// GroupsCollection holds one document per group.
	GroupsCollection = "groups"
)

// CredentialDocument is the persisted shape of a Credential.
// Method and AuthInfo are only set when Kind is "tfa".
type CredentialDocument struct {
	ID          string `json:"id" bson:"_id" datastore:"id"`
	Kind        string `json:"kind" bson:"kind" datastore:"kind"`
	Site        string `json:"site" bson:"site" datastore:"site"`
	URL         string `json:"url" bson:"url" datastore:"url,noindex"`
	Username    string `json:"username" bson:"username" datastore:"username"`
	Password    string `json:"password" bson:"password" datastore:"password,noindex"`
	LastChanged string `json:"lastChanged" bson:"lastChanged" datastore:"lastChanged"`
	Method      string `json:"method,omitempty" bson:"method,omitempty" datastore:"method,omitempty,noindex"`
	AuthInfo    string `json:"authInfo,omitempty" bson:"authInfo,omitempty" datastore:"authInfo,omitempty,noindex"`
}

// GroupDocument is the persisted shape of a Group.
// Members are stored by credential key only.
type GroupDocument struct {
	ID             string   `json:"id" bson:"_id" datastore:"id"`
	Name           string   `json:"name" bson:"name" datastore:"name"`
	SecurityFactor int      `json:"securityFactor" bson:"securityFactor" datastore:"securityFactor"`
	MemberKeys     []string `json:"memberKeys" bson:"memberKeys" datastore:"memberKeys,noindex"`
}

// Snapshot is the full contents of the store, materialised as entities.
type Snapshot struct {
	// Credentials holds every stored credential, sorted by key.
	Credentials []*Credential

	// Groups holds every stored group, sorted by key.
	Groups []*Group
}

// CredentialsByKey indexes the snapshot's credentials by key.
func (s *Snapshot) CredentialsByKey() map[string]*Credential {
	m := make(map[string]*Credential, len(s.Credentials))
	for _, c := range s.Credentials {
		m[c.Key()] = c
	}
	return m
}

// Package seed holds the mock data the feed starts from.
package seed

import (
	"github.com/Helbert77/Vigil/internal/domain"
)

// Data is a fresh copy of every seeded collection.
type Data struct {
	CurrentUser    domain.User
	Posts          []domain.Post
	Users          []domain.User
	Followers      []domain.User
	UsersToFollow  []domain.User
	Notifications  []domain.Notification
	Conversations  []domain.Conversation
	Communities    []domain.Community
	TrendingTopics []domain.TrendingTopic
}

func avatar(n string) string {
	return "https://picsum.photos/seed/user" + n + "/100/100"
}

func currentUser() domain.User {
	return domain.User{
		ID:             "u1",
		Name:           "Alex Cipher",
		Username:       "cipher_seeker",
		AvatarURL:      avatar("1"),
		BannerURL:      "https://picsum.photos/seed/banner1/1500/500",
		Bio:            "Seeker of hidden truths and patterns in the noise. The world is not what it seems. Join me on the path to enlightenment.",
		JoinDate:       "Joined July 2023",
		FollowingCount: 12,
		FollowersCount: 420,
	}
}

// Load builds the seed collections. Every call returns new slices.
func Load() Data {
	me := currentUser()
	evelyn := domain.User{ID: "u2", Name: "Dr. Evelyn Reed", Username: "quantum_whispers", AvatarURL: avatar("2"), JoinDate: "Joined March 2023", FollowingCount: 150, FollowersCount: 1200}
	shadow := domain.User{ID: "u3", Name: "Shadow Figure", Username: "the_watcher", AvatarURL: avatar("3"), JoinDate: "Joined January 2023", FollowingCount: 1, FollowersCount: 5000}
	agentK := domain.User{ID: "u4", Name: "Agent K", Username: "field_operative", AvatarURL: avatar("4"), JoinDate: "Joined October 2023", FollowingCount: 25, FollowersCount: 500}
	oracle := domain.User{ID: "u5", Name: "Oracle", Username: "data_prophet", AvatarURL: avatar("5"), JoinDate: "Joined September 2023", FollowingCount: 78, FollowersCount: 950}
	zero := domain.User{ID: "u6", Name: "Zero", Username: "ghost_in_the_machine", AvatarURL: avatar("6"), JoinDate: "Joined November 2023", FollowingCount: 10, FollowersCount: 200}
	nyx := domain.User{ID: "u7", Name: "Nyx", Username: "night_crawler", AvatarURL: avatar("7"), JoinDate: "Joined December 2023", FollowingCount: 30, FollowersCount: 350}

	posts := []domain.Post{
		{
			ID:        "p1",
			User:      evelyn,
			Text:      "Just cross-referenced the leylines with recent seismic activity. The patterns aren't natural. It's a grid, a network. Someone is activating something ancient beneath our feet. Stay vigilant. #SubterraneanCivilizations",
			ImageURL:  "https://picsum.photos/seed/post1/600/400",
			Timestamp: "2h ago",
			Likes:     187,
			Comments:  []domain.Comment{},
			Shares:    42,
		},
		{
			ID:        "p2",
			User:      shadow,
			Text:      "They are listening. Your smart devices are not just for convenience. They are nodes in a global surveillance network. The data they collect is not for ads; it is for control. Disconnect when you can. #AI_Sentience",
			Timestamp: "5h ago",
			Likes:     256,
			Comments:  []domain.Comment{},
			Shares:    98,
		},
		{
			ID:        "p3",
			User:      me,
			Text:      "Spent the weekend analyzing satellite imagery. There are structures in Antarctica that have been digitally removed from public maps. The heat signatures are off the charts. What are they hiding under the ice? #ProjectBluebeam",
			ImageURL:  "https://picsum.photos/seed/post3/600/400",
			Timestamp: "1d ago",
			Likes:     412,
			Comments:  []domain.Comment{},
			Shares:    112,
		},
		{
			ID:        "p4",
			User:      evelyn,
			Text:      "The 'Great Filter' theory is a distraction. Civilizations don't just die out. They are silenced. We must break the cycle before our signal becomes too loud. #MandelaEffect #SubterraneanCivilizations",
			Timestamp: "2d ago",
			Likes:     301,
			Comments:  []domain.Comment{},
			Shares:    76,
		},
	}

	return Data{
		CurrentUser:   me,
		Posts:         posts,
		Users:         []domain.User{me, evelyn, shadow, agentK, oracle, zero, nyx},
		Followers:     []domain.User{evelyn, shadow, agentK, oracle, zero, nyx},
		UsersToFollow: []domain.User{agentK, oracle},
		Notifications: []domain.Notification{
			{ID: "n1", User: evelyn, Text: "liked your post about antarctic structures.", Timestamp: "15m ago", PostID: "p3"},
			{ID: "n2", User: shadow, Text: `commented: "The signals are getting stronger. They know we are watching."`, Timestamp: "1h ago", PostID: "p3"},
			{ID: "n3", User: agentK, Text: "started following you.", Timestamp: "3h ago"},
			{ID: "n4", User: oracle, Text: "liked your post about leylines.", Timestamp: "1d ago", PostID: "p1"},
		},
		Conversations: []domain.Conversation{
			{
				ID:           "c1",
				Participants: []domain.User{me, evelyn},
				Messages: []domain.ChatMessage{
					{ID: "m1", SenderID: "u2", Text: "Hey Alex, that piece you wrote on the Antarctic structures was fascinating. Any new developments?", Timestamp: "Yesterday"},
					{ID: "m2", SenderID: "u1", Text: "Thanks, Evelyn. I'm waiting on some new satellite passes. The data is heavily redacted, as you can imagine.", Timestamp: "1h ago"},
					{ID: "m3", SenderID: "u2", Text: "Keep me updated. I have a theory that connects those heat signatures to the seismic grid I mentioned.", Timestamp: "5m ago"},
				},
			},
			{
				ID:           "c2",
				Participants: []domain.User{me, shadow},
				Messages: []domain.ChatMessage{
					{ID: "m4", SenderID: "u3", Text: "They know you are looking at the ice.", Timestamp: "3d ago"},
					{ID: "m5", SenderID: "u1", Text: "I know. It's a risk we have to take.", Timestamp: "3d ago"},
				},
			},
		},
		Communities: []domain.Community{
			{ID: "com1", Name: "Project Bluebeam Watchers", Description: "Dedicated to tracking and exposing the staged alien invasion event.", MemberCount: 12800, BannerURL: "https://picsum.photos/seed/comm1/600/200", Tag: "ProjectBluebeam"},
			{ID: "com2", Name: "Subterranean Civilization Studies", Description: "Exploring evidence of advanced societies living beneath the Earth's crust.", MemberCount: 9200, BannerURL: "https://picsum.photos/seed/comm2/600/200", Tag: "SubterraneanCivilizations"},
			{ID: "com3", Name: "Mandela Effect Archives", Description: "Cataloging and analyzing instances of collective false memories. Was it Berenstein or Berenstain?", MemberCount: 25600, BannerURL: "https://picsum.photos/seed/comm3/600/200", Tag: "MandelaEffect"},
			{ID: "com4", Name: "Sentient AI Observers", Description: "Monitoring the emergence of artificial general intelligence and its implications for humanity.", MemberCount: 18500, BannerURL: "https://picsum.photos/seed/comm4/600/200", Tag: "AI_Sentience"},
		},
		TrendingTopics: []domain.TrendingTopic{
			{Tag: "ProjectBluebeam", Posts: "12.1k"},
			{Tag: "SubterraneanCivilizations", Posts: "9.8k"},
			{Tag: "MandelaEffect", Posts: "22.4k"},
			{Tag: "AI_Sentience", Posts: "15.7k"},
		},
	}
}
